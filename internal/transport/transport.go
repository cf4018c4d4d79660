// Package transport provides the HTTP collaborator used by the Spotify client.
//
// A [Transport] issues GET and POST requests with caller-supplied headers and reports the outcome
// as a [Response]. Network failures are returned as errors; HTTP failures are reported through
// [Response.Success] so callers decide what a failed status means.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Transport performs raw HTTP requests.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (*Response, error)
	Post(ctx context.Context, url string, body []byte, headers map[string]string) (*Response, error)
}

// Response represents a raw HTTP response with status and body.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Success reports whether the status code is 2xx.
func (r *Response) Success() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Status returns the status code, or 0 for a nil response.
func (r *Response) Status() int {
	if r == nil {
		return 0
	}
	return r.StatusCode
}

// Content returns the response body as a string.
func (r *Response) Content() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// HTTP implements [Transport] on top of an [http.Client].
type HTTP struct {
	httpClient *http.Client
}

// NewHTTP creates an HTTP transport. A nil client falls back to [http.DefaultClient].
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{httpClient: client}
}

// Get performs a GET request to url with the given headers.
func (t *HTTP) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return t.do(req, headers)
}

// Post performs a POST request to url with body and the given headers.
func (t *HTTP) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return t.do(req, headers)
}

func (t *HTTP) do(req *http.Request, headers map[string]string) (*Response, error) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
