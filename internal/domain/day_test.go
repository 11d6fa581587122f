package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestDayMarkComplete_SetsTimestamp(t *testing.T) {
	d := &Day{Number: 1, Topics: []string{"Algebra"}, Priority: PriorityHigh}
	assert.True(t, d.MarkComplete(testNow))
	assert.True(t, d.Completed)
	require.NotNil(t, d.CompletedAt)
	assert.Equal(t, testNow, *d.CompletedAt)
	require.NoError(t, d.Validate())
}

func TestDayMarkComplete_KeepsFirstTimestamp(t *testing.T) {
	earlier := testNow.Add(-time.Hour)
	d := &Day{Number: 1, Topics: []string{"Algebra"}, Priority: PriorityHigh, Completed: true, CompletedAt: &earlier}
	assert.False(t, d.MarkComplete(testNow))
	assert.Equal(t, earlier, *d.CompletedAt, "should not overwrite existing CompletedAt")
}

func TestDayRevert(t *testing.T) {
	d := &Day{Number: 1, Topics: []string{"Algebra"}, Priority: PriorityHigh}
	d.MarkComplete(testNow)
	d.Revert()
	assert.False(t, d.Completed)
	assert.Nil(t, d.CompletedAt)
	require.NoError(t, d.Validate())
}

func TestDayValidate(t *testing.T) {
	cases := []struct {
		name  string
		day   Day
		field string
	}{
		{"zero number", Day{Number: 0, Topics: []string{"a"}, Priority: PriorityLow}, "day"},
		{"no topics", Day{Number: 1, Priority: PriorityLow}, "topics"},
		{"completed without timestamp", Day{Number: 1, Topics: []string{"a"}, Priority: PriorityLow, Completed: true}, "completed_at"},
		{"bad priority", Day{Number: 1, Topics: []string{"a"}, Priority: "urgent"}, "priority"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.day.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestTaskTypeForDay(t *testing.T) {
	assert.Equal(t, TaskStudy, TaskTypeForDay(DayStudy))
	assert.Equal(t, TaskPractice, TaskTypeForDay(DayBuffer))
	assert.Equal(t, TaskRevision, TaskTypeForDay(DayRevision))
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), Priority("other").Rank())
}
