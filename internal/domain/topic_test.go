package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicValidate(t *testing.T) {
	ok := Topic{Name: "Optics", Priority: PriorityLow, EstimatedHours: 1.5}
	require.NoError(t, ok.Validate())

	bad := []Topic{
		{Name: "  ", Priority: PriorityLow, EstimatedHours: 1},
		{Name: "Optics", Priority: "", EstimatedHours: 1},
		{Name: "Optics", Priority: PriorityLow, EstimatedHours: 0},
	}
	for _, tp := range bad {
		err := tp.Validate()
		assert.True(t, errors.Is(err, ErrInvalidInput), "topic %+v", tp)
	}
}

func TestSourceValidate(t *testing.T) {
	s := &Source{OwnerID: "u1", Title: "Physics", ExamDate: testStart}
	require.NoError(t, s.Validate())

	s.Topics = []Topic{{Name: "", Priority: PriorityHigh, EstimatedHours: 1}}
	require.Error(t, s.Validate())

	s = &Source{Title: "Physics", ExamDate: testStart}
	require.Error(t, s.Validate())
}

func TestCalendarDay(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	got := CalendarDay(time.Date(2025, 3, 2, 2, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)
	assert.True(t, SameDay(testStart, testStart.Add(23*time.Hour)))
}
