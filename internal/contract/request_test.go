package contract

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateRoadmapRequest_Defaults(t *testing.T) {
	req := NewGenerateRoadmapRequest("u1", "s1")
	assert.Equal(t, "u1", req.OwnerID)
	assert.Equal(t, "s1", req.SourceID)
	assert.Empty(t, req.Title)
	assert.Nil(t, req.StartDate)
	assert.Nil(t, req.WindowDays)
	require.NoError(t, req.Validate())
}

func TestGenerateRoadmapRequest_Validate(t *testing.T) {
	neg, big, ok := -1, MaxWindowDays+1, 0
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		req   GenerateRoadmapRequest
		field string
	}{
		{"missing owner", GenerateRoadmapRequest{SourceID: "s1"}, "owner_id"},
		{"missing source", GenerateRoadmapRequest{OwnerID: "u1"}, "source_id"},
		{"negative window", GenerateRoadmapRequest{OwnerID: "u1", SourceID: "s1", WindowDays: &neg}, "window_days"},
		{"window too large", GenerateRoadmapRequest{OwnerID: "u1", SourceID: "s1", WindowDays: &big}, "window_days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			var re *RequestError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tc.field, re.Field)
			assert.Equal(t, CodeInvalidRequest, re.Code)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	req := GenerateRoadmapRequest{OwnerID: "u1", SourceID: "s1", WindowDays: &ok}
	assert.NoError(t, req.Validate(), "a zero window is allowed")

	same := GenerateRoadmapRequest{OwnerID: "u1", SourceID: "s1", StartDate: &start, ExamDate: &start}
	assert.NoError(t, same.Validate(), "horizon length is checked by the scheduler")
}

func TestCompleteDayRequest_Validate(t *testing.T) {
	assert.NoError(t, CompleteDayRequest{OwnerID: "u1", RoadmapID: "r1", DayNumber: 1}.Validate())
	assert.NoError(t, CompleteDayRequest{OwnerID: "u1", RoadmapID: "r1"}.Validate(), "day range is checked against the roadmap")
	assert.Error(t, CompleteDayRequest{OwnerID: "u1"}.Validate())
	assert.Error(t, CompleteDayRequest{RoadmapID: "r1", DayNumber: 1}.Validate())
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{nil, ""},
		{domain.ErrEmptyTopics, CodeEmptyTopics},
		{&domain.InsufficientTimeError{HorizonDays: 3}, CodeInsufficientTime},
		{fmt.Errorf("wrapped: %w", &domain.DuplicateActiveRoadmapError{SourceID: "s"}), CodeDuplicateActiveRoadmap},
		{&domain.DayNotFoundError{RoadmapID: "r", DayNumber: 3}, CodeNotFound},
		{&domain.SourceNotFoundError{ID: "s"}, CodeNotFound},
		{&domain.ValidationError{Field: "x", Message: "bad"}, CodeInvalidRequest},
		{domain.ErrConcurrentUpdate, CodeConflict},
		{errors.New("disk on fire"), CodeInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CodeOf(tc.err), "err=%v", tc.err)
	}
}
