package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SchemaValidator checks a decoded value after JSON parsing.
type SchemaValidator[T any] func(T) error

var (
	fencePattern          = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingCommaPattern  = regexp.MustCompile(`,\s*([}\]])`)
	leadingDecimalPattern = regexp.MustCompile(`([:\[,]\s*)(-?)\.(\d)`)
)

// ExtractJSON pulls the first JSON value out of raw model output, repairs
// the common small mistakes, decodes it into T and runs validate.
func ExtractJSON[T any](raw string, validate SchemaValidator[T]) (T, error) {
	var zero T

	text := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	block, ok := firstJSONBlock(text)
	if !ok {
		return zero, fmt.Errorf("%w: no JSON value found", ErrInvalidOutput)
	}
	block = trailingCommaPattern.ReplaceAllString(block, "$1")
	block = leadingDecimalPattern.ReplaceAllString(block, "${1}${2}0.$3")

	var out T
	if err := json.Unmarshal([]byte(block), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// firstJSONBlock returns the first balanced object or array in s, skipping
// brackets inside string literals.
func firstJSONBlock(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
