package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const contentTypeJSON = "application/json"

// HTTPClient is the minimal client the transport needs.
// *http.Client satisfies it; tests substitute mocks.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is a single call to the API
type Request struct {
	Method  string
	URL     string
	Body    string
	Headers Headers
}

// Response is the normalized result of a request. HTTP error statuses are
// regular responses; only connection-level failures set Err, in which case
// StatusCode is 500 and Body holds the failure text.
type Response struct {
	StatusCode int
	Body       string
	Err        error
}

// Failed reports whether the request never produced an HTTP response
func (r Response) Failed() bool {
	return r.Err != nil
}

// Transport sends requests and normalizes their results
type Transport struct {
	client  HTTPClient
	charset encoding.Encoding
	logger  *zap.Logger
}

// Option configures a Transport
type Option func(*Transport)

// WithCharset sets the encoding used for request bodies.
// A nil encoding sends bodies as UTF-8.
func WithCharset(enc encoding.Encoding) Option {
	return func(t *Transport) {
		t.charset = enc
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transport. Request bodies default to ISO-8859-1, which the
// upstream API expects.
func New(client HTTPClient, opts ...Option) *Transport {
	t := &Transport{
		client:  client,
		charset: charmap.ISO8859_1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send issues the request. It never returns an error: failures to reach the
// server are folded into a 500 Response carrying the failure description.
func (t *Transport) Send(ctx context.Context, req Request) Response {
	requestID := uuid.NewString()
	startTime := time.Now()

	httpReq, err := t.newRequest(ctx, req)
	if err != nil {
		return t.fail(req, requestID, err)
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return t.fail(req, requestID, fmt.Errorf("failed to send request: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return t.fail(req, requestID, fmt.Errorf("failed to read response: %w", err))
	}

	t.logger.Debug("Received Decidir response",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("status_code", httpResp.StatusCode),
		zap.Int("body_length", len(body)),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return Response{
		StatusCode: httpResp.StatusCode,
		Body:       string(body),
	}
}

func (t *Transport) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != "" {
		encoded, err := t.encode(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Headers.apply(httpReq)
	if req.Method != http.MethodDelete {
		httpReq.Header.Set("Content-Type", contentTypeJSON)
	}

	return httpReq, nil
}

// encode converts body to the configured charset, replacing runes the
// charset cannot represent.
func (t *Transport) encode(body string) ([]byte, error) {
	if t.charset == nil {
		return []byte(body), nil
	}
	return encoding.ReplaceUnsupported(t.charset.NewEncoder()).Bytes([]byte(body))
}

func (t *Transport) fail(req Request, requestID string, err error) Response {
	t.logger.Warn("Decidir request failed before a response was received",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Error(err),
	)
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       err.Error(),
		Err:        err,
	}
}
