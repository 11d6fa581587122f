package llm

import "errors"

var (
	// ErrDisabled is returned by the disabled client.
	ErrDisabled = errors.New("llm disabled")

	// ErrOllamaUnavailable indicates the Ollama server is unreachable.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the request exceeded its task timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response did not hold the expected JSON.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates every attempt failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// ErrorCode is the short label used in call events.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrDisabled):
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}
