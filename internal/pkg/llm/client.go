package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
)

const defaultTimeout = 120 * time.Second

// RequestError is a network, auth, or HTTP-status failure against the LLM
// API. The gateway never retries; retry policy belongs to callers.
type RequestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm request: %v", e.Err)
	}
	return fmt.Sprintf("llm request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (e *RequestError) Unwrap() error { return e.Err }

// ResponseParseError means the model's text could not be decoded as the
// JSON the caller asked for, even after stripping markdown code fences.
type ResponseParseError struct {
	Snippet string
	Err     error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("llm response parse: %v (snippet: %s)", e.Err, e.Snippet)
}

func (e *ResponseParseError) Unwrap() error { return e.Err }

// Options tune a single completion call.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Client wraps an OpenAI-compatible chat completions endpoint as a single
// opaque request/response. No streaming, no prompt caching.
type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

func NewClient(cfg config.LLMConfig) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient overrides the HTTP client, for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a system+user prompt and returns the raw text response.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", &RequestError{Err: errors.New("api key not configured")}
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return "", &RequestError{Err: errors.New("system prompt required")}
	}
	if strings.TrimSpace(userPrompt) == "" {
		return "", &RequestError{Err: errors.New("user prompt required")}
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: opts.Temperature,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", &RequestError{Err: fmt.Errorf("encode body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", &RequestError{Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", &RequestError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if completion.Error != nil {
		return "", &RequestError{Err: fmt.Errorf("api error: %s", strings.TrimSpace(completion.Error.Message))}
	}
	if len(completion.Choices) == 0 {
		return "", &RequestError{Err: errors.New("empty choices")}
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", &RequestError{Err: fmt.Errorf("empty content (finish_reason=%q)",
			completion.Choices[0].FinishReason)}
	}
	return content, nil
}

// CompleteJSON runs Complete and decodes the response as JSON into out,
// stripping markdown code fences first.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, opts Options, out interface{}) error {
	content, err := c.Complete(ctx, systemPrompt, userPrompt, opts)
	if err != nil {
		return err
	}

	stripped := StripCodeFences(content)
	if err := json.Unmarshal([]byte(stripped), out); err != nil {
		return &ResponseParseError{Snippet: snippet(stripped), Err: err}
	}
	return nil
}

// StripCodeFences removes a surrounding ```...``` block, with or without a
// language tag, from the model's response.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json" or "csv").
		first := strings.TrimSpace(trimmed[:idx])
		if len(first) <= 10 && !strings.ContainsAny(first, "{},:\"") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func snippet(s string) string {
	const max = 120
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
