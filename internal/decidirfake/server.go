// Package decidirfake is a scripted stand-in for the Decidir API used in tests.
package decidirfake

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// PaymentsPath is the payments base path the fake is usually mounted under
const PaymentsPath = "/api/v2/"

// RecordedRequest is a request received by the fake
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Server serves scripted responses and records every request
type Server struct {
	*httptest.Server

	router chi.Router

	mu       sync.Mutex
	requests []RecordedRequest
}

// New starts a fake closed automatically when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{router: chi.NewRouter()}
	s.router.Use(s.record)
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// Respond scripts method+pattern to answer with status and a raw body.
// Patterns use chi syntax, e.g. "/api/v2/payments/{id}".
func (s *Server) Respond(method, pattern string, status int, body string) {
	s.HandleFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// RespondJSON scripts method+pattern to answer with status and v encoded as JSON
func (s *Server) RespondJSON(method, pattern string, status int, v any) {
	s.HandleFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

// HandleFunc installs a custom handler
func (s *Server) HandleFunc(method, pattern string, fn http.HandlerFunc) {
	s.router.MethodFunc(method, pattern, fn)
}

// Requests returns a copy of the requests received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request; ok is false if none arrived
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}
