package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

// timestampLayout has fixed-width fractional seconds so stored timestamps
// sort lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t.UTC(), nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(domain.DateLayout)
}

func parseDate(s, field string) (time.Time, error) {
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// parseNullableTimestamp returns nil for NULL or empty values.
func parseNullableTimestamp(s sql.NullString, field string) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTimestamp(s.String, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullableTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTimestamp(*t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// encodeStrings stores a string list as a JSON array; nil becomes [].
func encodeStrings(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", fmt.Errorf("encoding string list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(s, field string) ([]string, error) {
	vals := []string{}
	if s == "" {
		return vals, nil
	}
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", field, err)
	}
	return vals, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
// naming the given table.column.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
