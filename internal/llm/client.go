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

// maxResponseBytes bounds how much of a completion response is read.
const maxResponseBytes = 4 << 20

// CompletionRequest holds the parameters for a single-turn completion call.
type CompletionRequest struct {
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Completer sends a prompt to the remote model and returns its text.
type Completer interface {
	// Complete performs exactly one request. Errors wrap ErrUpstream or ErrTransport.
	Complete(ctx context.Context, prompt string) (string, error)

	// Available checks whether the completion service is reachable.
	Available(ctx context.Context) bool
}

// chatClient implements Completer against an OpenAI-compatible
// chat-completions endpoint.
type chatClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewChatClient creates a Completer for the configured endpoint.
func NewChatClient(cfg LLMConfig, observer Observer) Completer {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &chatClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout(),
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		observer: observer,
	}
}

// NewRequest builds the request sent for prompt using the configured parameters.
func (c LLMConfig) NewRequest(prompt string) CompletionRequest {
	return CompletionRequest{
		Prompt:      prompt,
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the JSON body sent to POST /api/v1/chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// chatResponse is the subset of the completion response that is used.
type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

func (c *chatClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	req := c.cfg.NewRequest(prompt)

	text, status, err := c.doRequest(ctx, req)

	c.observer.OnCallComplete(LLMCallEvent{
		Model:      req.Model,
		LatencyMs:  time.Since(start).Milliseconds(),
		StatusCode: status,
		Success:    err == nil,
		ErrorCode:  ErrorCode(err),
		Err:        err,
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *chatClient) doRequest(ctx context.Context, req CompletionRequest) (string, int, error) {
	if !c.cfg.Configured() {
		return "", 0, fmt.Errorf("%w: %w", ErrTransport, ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	body := chatRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Stream:      false,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", 0, fmt.Errorf("%w: marshaling request: %v", ErrTransport, err)
	}

	url := c.cfg.Endpoint + CompletionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", 0, fmt.Errorf("%w: creating request: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", 0, transportError(ctx, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return "", httpResp.StatusCode, transportError(ctx, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", httpResp.StatusCode, fmt.Errorf("%w: status %d: %s",
			ErrUpstream, httpResp.StatusCode, truncate(string(respBody), 200))
	}

	// A 200 with a body that is not a completion is a client-side failure.
	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", httpResp.StatusCode, fmt.Errorf("%w: decoding response: %v", ErrTransport, err)
	}
	if len(resp.Choices) == 0 {
		return "", httpResp.StatusCode, fmt.Errorf("%w: response has no choices", ErrUpstream)
	}

	return resp.Choices[0].Message.Content, httpResp.StatusCode, nil
}

func (c *chatClient) Available(ctx context.Context) bool {
	if !c.cfg.Configured() {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+modelsPath, nil)
	if err != nil {
		return false
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// transportError wraps a client-side failure, marking deadline expiry as ErrTimeout.
func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return fmt.Errorf("%w: %w: %v", ErrTransport, ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
