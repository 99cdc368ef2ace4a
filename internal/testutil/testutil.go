// Package testutil holds test fixtures shared across packages: a fake
// planning server and request-recording helpers.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is one request the fake server received.
type RecordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// FakeServer is an httptest server with canned per-route responses and a
// record of every request received.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	handlers map[string]http.HandlerFunc
}

// NewFakeServer starts a fake planning server. Routes are registered with
// Handle; unregistered routes return 404 with a detail body.
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()
	fs := &FakeServer{handlers: map[string]http.HandlerFunc{}}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		fs.mu.Lock()
		fs.requests = append(fs.requests, RecordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
		h, ok := fs.handlers[r.Method+" "+r.URL.Path]
		fs.mu.Unlock()
		if !ok {
			WriteDetail(w, 404, "not found")
			return
		}
		h(w, r)
	}))
	t.Cleanup(fs.Close)
	return fs
}

// Handle registers a handler for "METHOD /path".
func (fs *FakeServer) Handle(method, path string, h http.HandlerFunc) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.handlers[method+" "+path] = h
}

// HandleJSON registers a handler that always writes the given status and
// JSON body.
func (fs *FakeServer) HandleJSON(method, path string, status int, body interface{}) {
	fs.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns a copy of all recorded requests.
func (fs *FakeServer) Requests() []RecordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]RecordedRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

// RequestCount returns how many requests matched method and path.
func (fs *FakeServer) RequestCount(method, path string) int {
	n := 0
	for _, r := range fs.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// WriteDetail writes the server error convention: a JSON body with a detail
// string.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, map[string]string{"detail": detail})
}

// DecodeBody unmarshals a recorded request body into v.
func DecodeBody(t *testing.T, r RecordedRequest, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %s %s body: %v", r.Method, r.Path, err)
	}
}
