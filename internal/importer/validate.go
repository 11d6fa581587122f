package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/domain"
)

// ValidateSyllabus checks the schema before conversion and returns every
// problem found.
func ValidateSyllabus(schema *SyllabusSchema) []error {
	var errs []error

	if strings.TrimSpace(schema.Title) == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	if schema.ExamDate == "" {
		errs = append(errs, fmt.Errorf("exam_date is required"))
	} else if _, err := domain.ParseDate(schema.ExamDate); err != nil {
		errs = append(errs, fmt.Errorf("exam_date: invalid date format %q (expected YYYY-MM-DD)", schema.ExamDate))
	}

	seen := make(map[string]bool)
	for i, t := range schema.Topics {
		prefix := fmt.Sprintf("topics[%d]", i)
		name := strings.TrimSpace(t.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if seen[strings.ToLower(name)] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate topic %q", prefix, name))
		}
		seen[strings.ToLower(name)] = true

		if t.Priority != "" && !domain.ValidPriorities[strings.ToLower(t.Priority)] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
		}
		if t.EstimatedHours != nil && *t.EstimatedHours <= 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_hours must be positive", prefix))
		}
		for j, s := range t.Subtopics {
			if strings.TrimSpace(s) == "" {
				errs = append(errs, fmt.Errorf("%s.subtopics[%d] is blank", prefix, j))
			}
		}
	}
	return errs
}

// JoinErrors folds validation errors into one error that unwraps to
// domain.ErrInvalidInput.
func JoinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// IsValidationError reports whether err came from JoinErrors.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput)
}
