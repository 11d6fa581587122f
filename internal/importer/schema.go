package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SyllabusSchema is the import format of a topic source. Files may be
// JSON or YAML; both use the same field names.
type SyllabusSchema struct {
	Title    string        `json:"title" yaml:"title"`
	ExamDate string        `json:"exam_date" yaml:"exam_date"`
	RawText  string        `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
	Topics   []TopicImport `json:"topics" yaml:"topics"`
}

type TopicImport struct {
	Name      string   `json:"name" yaml:"name"`
	Subtopics []string `json:"subtopics,omitempty" yaml:"subtopics,omitempty"`
	// Priority defaults to medium.
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
	// EstimatedHours defaults to DefaultEstimatedHours.
	EstimatedHours *float64 `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadSyllabus reads and parses a syllabus file.
func LoadSyllabus(path string) (*SyllabusSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSyllabus(data, FormatForPath(path))
}

func ParseSyllabus(data []byte, format Format) (*SyllabusSchema, error) {
	var schema SyllabusSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing syllabus yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing syllabus json: %w", err)
		}
	}
	return &schema, nil
}
