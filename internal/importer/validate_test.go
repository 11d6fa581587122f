package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *SyllabusSchema {
	return &SyllabusSchema{
		Title:    "Data Structures",
		ExamDate: "2025-02-01",
		Topics: []TopicImport{
			{Name: "Arrays"},
		},
	}
}

func TestValidateSyllabus_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSyllabus(validMinimalSchema()))
}

func TestValidateSyllabus_NoTopicsIsValid(t *testing.T) {
	// An empty source can be stored; generation rejects it later.
	s := validMinimalSchema()
	s.Topics = nil
	assert.Empty(t, ValidateSyllabus(s))
}

func TestValidateSyllabus_CollectsAllErrors(t *testing.T) {
	s := &SyllabusSchema{
		ExamDate: "02/01/2025",
		Topics: []TopicImport{
			{Name: "Arrays", Priority: "urgent"},
			{Name: "arrays", EstimatedHours: ptrFloat(0)},
			{Name: " ", Subtopics: []string{""}},
		},
	}
	errs := ValidateSyllabus(s)
	joined := JoinErrors(errs).Error()

	assert.Len(t, errs, 7)
	for _, want := range []string{
		"title is required",
		"exam_date: invalid date format",
		"topics[0].priority: invalid value \"urgent\"",
		"topics[1].name: duplicate topic",
		"topics[1].estimated_hours must be positive",
		"topics[2].name is required",
		"topics[2].subtopics[0] is blank",
	} {
		assert.True(t, strings.Contains(joined, want), "missing %q in %s", want, joined)
	}
	assert.True(t, IsValidationError(JoinErrors(errs)))
	assert.Nil(t, JoinErrors(nil))
}
