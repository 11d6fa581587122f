package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestConvert_AppliesDefaults(t *testing.T) {
	s := &SyllabusSchema{
		Title:    "  Data Structures ",
		ExamDate: "2025-02-01",
		RawText:  "Module 1: Arrays",
		Topics: []TopicImport{
			{Name: "Arrays", Subtopics: []string{" indexing "}},
			{Name: "Trees", Priority: "HIGH", EstimatedHours: ptrFloat(6)},
		},
	}
	require.Empty(t, ValidateSyllabus(s))

	src, err := Convert(s, "u1", testNow)
	require.NoError(t, err)
	assert.NotEmpty(t, src.ID)
	assert.Equal(t, "u1", src.OwnerID)
	assert.Equal(t, "Data Structures", src.Title)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), src.ExamDate)
	assert.Equal(t, "Module 1: Arrays", src.RawText)

	require.Len(t, src.Topics, 2)
	assert.Equal(t, domain.PriorityMedium, src.Topics[0].Priority)
	assert.Equal(t, DefaultEstimatedHours, src.Topics[0].EstimatedHours)
	assert.Equal(t, []string{"indexing"}, src.Topics[0].Subtopics)
	assert.Equal(t, domain.PriorityHigh, src.Topics[1].Priority)
	assert.Equal(t, 6.0, src.Topics[1].EstimatedHours)
}

func TestParseSyllabus_YAMLAndJSONAgree(t *testing.T) {
	yamlDoc := `
title: Physics
exam_date: "2025-03-01"
topics:
  - name: Kinematics
    subtopics: [velocity, acceleration]
    priority: high
    estimated_hours: 3
  - name: Optics
`
	jsonDoc := `{
  "title": "Physics",
  "exam_date": "2025-03-01",
  "topics": [
    {"name": "Kinematics", "subtopics": ["velocity", "acceleration"], "priority": "high", "estimated_hours": 3},
    {"name": "Optics"}
  ]
}`
	fromYAML, err := ParseSyllabus([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)
	fromJSON, err := ParseSyllabus([]byte(jsonDoc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)
	require.NotNil(t, fromYAML.Topics[0].EstimatedHours)
	assert.Equal(t, 3.0, *fromYAML.Topics[0].EstimatedHours)
	assert.Nil(t, fromYAML.Topics[1].EstimatedHours)
}

func TestParseSyllabus_Malformed(t *testing.T) {
	_, err := ParseSyllabus([]byte(`{"title":`), FormatJSON)
	assert.Error(t, err)
	_, err = ParseSyllabus([]byte("title: [unclosed"), FormatYAML)
	assert.Error(t, err)
}

func TestLoadSyllabus_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "physics.yml")
	require.NoError(t, os.WriteFile(path, []byte("title: Physics\nexam_date: \"2025-03-01\"\n"), 0o644))

	s, err := LoadSyllabus(path)
	require.NoError(t, err)
	assert.Equal(t, "Physics", s.Title)

	assert.Equal(t, FormatJSON, FormatForPath("x.json"))
	assert.Equal(t, FormatYAML, FormatForPath("X.YAML"))
}
