package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []LLMCallEvent
}

func (r *recordingObserver) OnCallComplete(e LLMCallEvent) { r.events = append(r.events, e) }

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.MaxRetries = 0
	return cfg
}

func TestGenerate_Success(t *testing.T) {
	var got ollamaGenerateBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaGenerateReply{Model: "llama3.2", Response: `{"ok":true}`, Done: true})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewOllamaClient(testConfig(srv.URL), obs)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskFlashcards,
		SystemPrompt: "sys",
		UserPrompt:   "user",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)

	assert.Equal(t, "sys", got.System)
	assert.Equal(t, "user", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, "json", got.Format)
	assert.InDelta(t, 0.4, got.Options["temperature"], 1e-9)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, TaskFlashcards, obs.events[0].Task)
	assert.Equal(t, 1, obs.events[0].Attempts)
}

func TestGenerate_TemperatureOverride(t *testing.T) {
	var got ollamaGenerateBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(ollamaGenerateReply{Response: "x"})
	}))
	defer srv.Close()

	temp := 0.0
	tokens := 64
	_, err := NewOllamaClient(testConfig(srv.URL), nil).Generate(context.Background(), GenerateRequest{
		Task: TaskNarrative, UserPrompt: "p", Temperature: &temp, MaxTokens: &tokens,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.Options["temperature"], 1e-9)
	assert.InDelta(t, 64, got.Options["num_predict"], 1e-9)
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks[TaskNarrative] = TaskConfig{TimeoutMs: 50}
	obs := &recordingObserver{}

	_, err := NewOllamaClient(cfg, obs).Generate(context.Background(), GenerateRequest{Task: TaskNarrative, UserPrompt: "p"})
	require.ErrorIs(t, err, ErrTimeout)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "TIMEOUT", obs.events[0].ErrorCode)
}

func TestGenerate_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	_, err := NewOllamaClient(testConfig(endpoint), nil).Generate(context.Background(), GenerateRequest{Task: TaskMockTest, UserPrompt: "p"})
	require.ErrorIs(t, err, ErrOllamaUnavailable)
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ollamaGenerateReply{Response: "second"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2
	obs := &recordingObserver{}

	resp, err := NewOllamaClient(cfg, obs).Generate(context.Background(), GenerateRequest{Task: TaskFlashcards, UserPrompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Text)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, obs.events[0].Attempts)
}

func TestGenerate_RetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	_, err := NewOllamaClient(cfg, nil).Generate(context.Background(), GenerateRequest{Task: TaskFlashcards, UserPrompt: "p"})
	require.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerate_ServerErrorWithoutRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaClient(testConfig(srv.URL), nil).Generate(context.Background(), GenerateRequest{Task: TaskFlashcards, UserPrompt: "p"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRetryExhausted))
	assert.Contains(t, err.Error(), "model not found")
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(srv.URL), nil).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig("http://127.0.0.1:1"), nil).Available(context.Background()))
}

func TestDisabledClient(t *testing.T) {
	c := NewDisabledClient()
	_, err := c.Generate(context.Background(), GenerateRequest{Task: TaskNarrative})
	require.ErrorIs(t, err, ErrDisabled)
	assert.False(t, c.Available(context.Background()))
}
