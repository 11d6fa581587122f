package contract

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/preplock/internal/domain"
)

type ErrorCode string

const (
	CodeEmptyTopics            ErrorCode = "EMPTY_TOPICS"
	CodeInsufficientTime       ErrorCode = "INSUFFICIENT_TIME"
	CodeDuplicateActiveRoadmap ErrorCode = "DUPLICATE_ACTIVE_ROADMAP"
	CodeNotFound               ErrorCode = "NOT_FOUND"
	CodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	CodeConflict               ErrorCode = "CONFLICT"
	CodeInternal               ErrorCode = "INTERNAL"
)

// RequestError is a boundary validation failure.
type RequestError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

func (e *RequestError) Unwrap() error { return domain.ErrInvalidInput }

func invalidRequest(field, format string, args ...any) error {
	return &RequestError{Code: CodeInvalidRequest, Field: field, Message: fmt.Sprintf(format, args...)}
}

// CodeOf classifies an error returned by a use case.
func CodeOf(err error) ErrorCode {
	var reqErr *RequestError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &reqErr):
		return reqErr.Code
	case errors.Is(err, domain.ErrEmptyTopics):
		return CodeEmptyTopics
	case errors.Is(err, domain.ErrInsufficientTime):
		return CodeInsufficientTime
	case errors.Is(err, domain.ErrDuplicateActiveRoadmap):
		return CodeDuplicateActiveRoadmap
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return CodeInvalidRequest
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return CodeConflict
	default:
		return CodeInternal
	}
}
