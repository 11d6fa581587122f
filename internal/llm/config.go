package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation being requested.
type TaskType string

const (
	TaskFlashcards TaskType = "flashcards"
	TaskMockTest   TaskType = "mock_test"
	TaskNarrative  TaskType = "narrative"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides the global timeout when > 0
}

type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig has generation disabled; content falls back to templates.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  20000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskFlashcards: {Temperature: 0.4, MaxTokens: 2048, TimeoutMs: 30000},
			TaskMockTest:   {Temperature: 0.4, MaxTokens: 3072, TimeoutMs: 45000},
			TaskNarrative:  {Temperature: 0.6, MaxTokens: 512, TimeoutMs: 10000},
		},
	}
}

// LoadConfig reads PREPLOCK_LLM_* variables over the defaults. Malformed
// values are ignored.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("PREPLOCK_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PREPLOCK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PREPLOCK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PREPLOCK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := envInt("PREPLOCK_LLM_TIMEOUT_MS"); ok && n > 0 {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("PREPLOCK_LLM_MAX_RETRIES"); ok && n >= 0 {
		cfg.MaxRetries = n
	}

	for task, env := range map[TaskType]string{
		TaskFlashcards: "PREPLOCK_LLM_FLASHCARDS_TIMEOUT_MS",
		TaskMockTest:   "PREPLOCK_LLM_MOCK_TEST_TIMEOUT_MS",
		TaskNarrative:  "PREPLOCK_LLM_NARRATIVE_TIMEOUT_MS",
	} {
		if n, ok := envInt(env); ok && n > 0 {
			tc := cfg.Tasks[task]
			tc.TimeoutMs = n
			cfg.Tasks[task] = tc
		}
	}
	return cfg
}

// TaskTimeout returns the task-specific timeout if set, else the global one.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
