// Package client talks to the MOA backend over HTTP. It exposes the two
// backend operations, POST /invoke (blocking) and POST /invoke-stream
// (chunked), behind a single Run call that yields a uniform sequence of
// Events regardless of transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// InvokeRequest is the body for both /invoke and /invoke-stream.
type InvokeRequest struct {
	Query string `json:"query"`
}

// InvokeResponse from POST /invoke.
type InvokeResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the backend's failure body. Detail is optional.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Client issues turns against the MOA backend. Streaming selects which of
// the two endpoints Run uses; it may be flipped between turns (never
// mid-turn; the app enforces one turn in flight).
type Client struct {
	BaseURL string
	// HTTPClient serves the blocking endpoint and carries its deadline.
	HTTPClient *http.Client
	// StreamClient has no timeout: a stream lives as long as the operation
	// behind it, and http.Client.Timeout would cut the body read off.
	// Cancellation comes from the request context instead.
	StreamClient *http.Client
	Streaming    bool
}

// New creates a Client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 300 * time.Second,
		},
		StreamClient: &http.Client{},
	}
}

// Run executes one turn and returns its event channel. The channel always
// carries at least one event and is closed when the turn is over. Callers
// that observe a close without a terminal event must treat the turn as
// failed (the transcript layer synthesizes the error).
func (c *Client) Run(ctx context.Context, query string) <-chan Event {
	ch := make(chan Event)
	if c.Streaming {
		go c.runStream(ctx, query, ch)
	} else {
		go c.runBlocking(ctx, query, ch)
	}
	return ch
}

func (c *Client) runBlocking(ctx context.Context, query string, ch chan<- Event) {
	defer close(ch)
	text, err := c.Invoke(ctx, query)
	if err != nil {
		ch <- Event{Kind: EventError, Text: err.Error()}
		return
	}
	ch <- Event{Kind: EventResponse, Text: text}
}

// Invoke issues the blocking endpoint and returns the agent's reply text.
func (c *Client) Invoke(ctx context.Context, query string) (string, error) {
	resp, err := c.postJSON(ctx, c.HTTPClient, "/invoke", InvokeRequest{Query: query})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.parseError(resp)
	}
	var out InvokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Response, nil
}

func (c *Client) postJSON(ctx context.Context, httpc *http.Client, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return httpc.Do(req)
}

// parseError extracts the backend's detail message from a non-2xx
// response, falling back to a generic message with the status code.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
		return fmt.Errorf("%s", apiErr.Detail)
	}
	return fmt.Errorf("HTTP error %d", resp.StatusCode)
}
