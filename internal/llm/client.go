package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest is one prompt sent to the model.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // overrides the task default when set
	MaxTokens    *int
}

type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient generates text from a local model.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Available(ctx context.Context) bool
}

type ollamaGenerateBody struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateReply struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient returns a client for the Ollama HTTP API.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg:      cfg,
		http:     &http.Client{},
		observer: observer,
	}
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	started := time.Now()
	attempts := 0

	resp, err := c.generateWithRetry(ctx, req, &attempts)

	event := LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(started).Milliseconds(),
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: ErrorCode(err),
	}
	c.observer.OnCallComplete(event)

	if err != nil {
		return nil, err
	}
	resp.LatencyMs = event.LatencyMs
	return resp, nil
}

func (c *ollamaClient) generateWithRetry(ctx context.Context, req GenerateRequest, attempts *int) (*GenerateResponse, error) {
	var lastErr error
	for i := 0; i <= c.cfg.MaxRetries; i++ {
		*attempts = i + 1
		resp, err := c.generateOnce(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if c.cfg.MaxRetries > 0 && *attempts > 1 {
		return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
	}
	return nil, lastErr
}

func (c *ollamaClient) generateOnce(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(c.buildBody(req))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url("/api/generate"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(callCtx, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("ollama returned %d: %s", httpResp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var reply ollamaGenerateReply
	if err := json.NewDecoder(httpResp.Body).Decode(&reply); err != nil {
		if callCtx.Err() != nil {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	model := reply.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{Text: reply.Response, Model: model}, nil
}

func (c *ollamaClient) buildBody(req GenerateRequest) ollamaGenerateBody {
	tc := c.cfg.Tasks[req.Task]
	temperature := tc.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := tc.MaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	opts := map[string]any{"temperature": temperature}
	if maxTokens > 0 {
		opts["num_predict"] = maxTokens
	}
	return ollamaGenerateBody{
		Model:   c.cfg.Model,
		System:  req.SystemPrompt,
		Prompt:  req.UserPrompt,
		Stream:  false,
		Format:  "json",
		Options: opts,
	}
}

// Available pings the tags endpoint with a short timeout.
func (c *ollamaClient) Available(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(pingCtx, http.MethodGet, c.url("/api/tags"), nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *ollamaClient) url(path string) string {
	return strings.TrimRight(c.cfg.Endpoint, "/") + path
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
}

type disabledClient struct{}

// NewDisabledClient returns a client that always fails with ErrDisabled.
func NewDisabledClient() LLMClient { return disabledClient{} }

func (disabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrDisabled
}

func (disabledClient) Available(context.Context) bool { return false }
