// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/desertthunder/spotq/internal/transport"
)

// Call records one request made through a [MockTransport].
type Call struct {
	Method  string
	URL     string
	Body    []byte
	Headers map[string]string
}

// MockTransport is a test double for [transport.Transport].
//
// Responses come from GetFunc/PostFunc when set, otherwise from the fixed Get*/Post* fields.
type MockTransport struct {
	GetResponse  *transport.Response
	GetErr       error
	PostResponse *transport.Response
	PostErr      error

	GetFunc  func(url string, headers map[string]string) (*transport.Response, error)
	PostFunc func(url string, body []byte, headers map[string]string) (*transport.Response, error)

	mu    sync.Mutex
	calls []Call
}

// OK builds a 200 response with body.
func OK(body string) *transport.Response {
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

// Status builds a response with the given status code and body.
func Status(code int, body string) *transport.Response {
	return &transport.Response{StatusCode: code, Body: []byte(body)}
}

func (m *MockTransport) Get(ctx context.Context, url string, headers map[string]string) (*transport.Response, error) {
	m.record(Call{Method: http.MethodGet, URL: url, Headers: headers})
	if m.GetFunc != nil {
		return m.GetFunc(url, headers)
	}
	return m.GetResponse, m.GetErr
}

func (m *MockTransport) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*transport.Response, error) {
	m.record(Call{Method: http.MethodPost, URL: url, Body: body, Headers: headers})
	if m.PostFunc != nil {
		return m.PostFunc(url, body, headers)
	}
	return m.PostResponse, m.PostErr
}

func (m *MockTransport) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// Calls returns a copy of every recorded request.
func (m *MockTransport) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns the number of recorded requests with the given method.
func (m *MockTransport) CallCount(method string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// LastCall returns the most recent request. It fails the test when there is none.
func (m *MockTransport) LastCall(t *testing.T) Call {
	t.Helper()
	calls := m.Calls()
	if len(calls) == 0 {
		t.Fatal("expected at least one transport call")
	}
	return calls[len(calls)-1]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}
