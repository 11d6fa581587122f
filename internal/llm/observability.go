package llm

import "github.com/alexanderramin/preplock/internal/logger"

// LLMCallEvent records metadata about a single generation call.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives call events for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

type logObserver struct {
	log *logger.Logger
}

// NewLogObserver logs every call at info, failures at warn.
func NewLogObserver(log *logger.Logger) Observer {
	if log == nil {
		return NoopObserver{}
	}
	return &logObserver{log: log}
}

func (o *logObserver) OnCallComplete(e LLMCallEvent) {
	kv := []any{
		"task", string(e.Task),
		"model", e.Model,
		"latency_ms", e.LatencyMs,
		"attempts", e.Attempts,
	}
	if !e.Success {
		o.log.Warn("llm_call", append(kv, "error_code", e.ErrorCode)...)
		return
	}
	o.log.Info("llm_call", kv...)
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
