// Package decidir is a client for the Decidir payment API.
//
// A Connector is immutable once built and safe for concurrent use. Every
// operation takes a context, sends exactly one request and never retries;
// failures are returned as values of the pkg/errors taxonomy.
package decidir

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kevin07696/decidir-go/internal/classify"
	"github.com/kevin07696/decidir-go/internal/transport"
	pkgerrors "github.com/kevin07696/decidir-go/pkg/errors"
	pkghttp "github.com/kevin07696/decidir-go/pkg/http"
	"github.com/kevin07696/decidir-go/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Version is reported to the API through the X-Source header
const Version = "1.4.8"

const (
	headerAPIKey           = "apikey"
	headerCacheControl     = "Cache-Control"
	headerSource           = "X-Source"
	headerConsumerUsername = "X-Consumer-Username"

	sourceService = "SDK-GO"
)

// Connector is the entry point to every Decidir operation
type Connector struct {
	endpoints   endpoints
	environment string

	privateKey  string
	publicKey   string
	validateKey string
	merchant    string

	// headers carries apikey=privateKey plus the static headers. Operations
	// that need another key or identity derive a copy with With.
	headers   transport.Headers
	transport *transport.Transport
	logger    *zap.Logger
	metrics   *Metrics
}

type options struct {
	environment Environment
	host        string
	path        string

	validateKey string
	merchant    string
	grouper     string
	developer   string

	httpClient transport.HTTPClient
	timeout    time.Duration
	charset    encoding.Encoding
	charsetSet bool
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// Option configures a Connector
type Option func(*options)

// WithEnvironment selects a predefined installation (default: sandbox)
func WithEnvironment(env Environment) Option {
	return func(o *options) {
		o.environment = env
	}
}

// WithEndpoint targets a custom installation: host (e.g. "https://example.com")
// and the payments path (e.g. "/api/v2/")
func WithEndpoint(host, path string) Option {
	return func(o *options) {
		o.host = host
		o.path = path
	}
}

// WithValidateCredentials sets the key and merchant used by Validate
func WithValidateCredentials(validateKey, merchant string) Option {
	return func(o *options) {
		o.validateKey = validateKey
		o.merchant = merchant
	}
}

// WithSource sets the grouper and developer reported in the X-Source header
func WithSource(grouper, developer string) Option {
	return func(o *options) {
		o.grouper = grouper
		o.developer = developer
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client transport.HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the per-request ceiling of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithCharset sets the request body encoding. The default is ISO-8859-1;
// nil sends UTF-8.
func WithCharset(enc encoding.Encoding) Option {
	return func(o *options) {
		o.charset = enc
		o.charsetSet = true
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics registers operation metrics on reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// New creates a Connector authenticated with the site's private and public keys
func New(privateKey, publicKey string, opts ...Option) (*Connector, error) {
	if privateKey == "" {
		return nil, pkgerrors.NewValidationError("private_key", "private API key is required")
	}

	o := &options{environment: EnvironmentSandbox}
	for _, opt := range opts {
		opt(o)
	}

	var ep endpoints
	envName := "custom"
	if o.host != "" {
		ep = customEndpoints(o.host, o.path)
	} else {
		var err error
		if ep, err = environmentEndpoints(o.environment); err != nil {
			return nil, err
		}
		envName = o.environment.String()
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = pkghttp.NewHTTPClient(pkghttp.DecidirClientConfig(), o.timeout)
	}

	transportOpts := []transport.Option{transport.WithLogger(logger)}
	if o.charsetSet {
		transportOpts = append(transportOpts, transport.WithCharset(o.charset))
	}

	source, err := sourceHeader(o.grouper, o.developer)
	if err != nil {
		return nil, err
	}

	var metrics *Metrics
	if o.registerer != nil {
		metrics = NewMetrics(o.registerer)
	}

	logger.Info("Decidir connector initialized",
		zap.String("environment", envName),
		zap.String("endpoint", ep.payments),
	)

	return &Connector{
		endpoints:   ep,
		environment: envName,
		privateKey:  privateKey,
		publicKey:   publicKey,
		validateKey: o.validateKey,
		merchant:    o.merchant,
		headers: transport.NewHeaders(map[string]string{
			headerAPIKey:       privateKey,
			headerCacheControl: "no-cache",
			headerSource:       source,
		}),
		transport: transport.New(httpClient, transportOpts...),
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// Endpoint returns the payments base URL the connector targets
func (c *Connector) Endpoint() string {
	return c.endpoints.payments
}

// sourceHeader builds the base64 JSON identification sent in X-Source
func sourceHeader(grouper, developer string) (string, error) {
	source := struct {
		Service   string `json:"service"`
		Grouper   string `json:"grouper"`
		Developer string `json:"developer"`
	}{sourceService, grouper, developer}

	payload, err := json.Marshal(source)
	if err != nil {
		return "", fmt.Errorf("failed to marshal source header: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// toJSON serializes a request body; optional fields carry omitempty
func toJSON(v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	return string(payload), nil
}

// send issues one request and records the operation's log line and metrics.
// finish must be called with the operation's final error.
func (c *Connector) send(ctx context.Context, operation string, req transport.Request) (transport.Response, func(error)) {
	start := time.Now()
	resp := c.transport.Send(ctx, req)

	return resp, func(err error) {
		elapsed := time.Since(start)
		outcome := outcomeLabel(err)
		c.metrics.observe(operation, outcome, elapsed)

		fields := []zap.Field{
			zap.String("operation", operation),
			zap.Int("status_code", resp.StatusCode),
			zap.String("outcome", outcome),
			zap.Duration("elapsed", elapsed),
		}
		switch outcome {
		case "success", "pending":
			c.logger.Info("Decidir operation completed", fields...)
		default:
			c.logger.Warn("Decidir operation failed", append(fields, zap.Error(err))...)
		}
	}
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	if stderrors.Is(err, pkgerrors.ErrTransport) {
		return "transport_error"
	}
	if re, ok := pkgerrors.AsResponseError(err); ok {
		if re.Kind() == pkgerrors.KindThreeDS {
			return "pending"
		}
		return string(re.Kind())
	}
	return "internal_error"
}

// errorDecoder extracts a structured error from an error-range body, or nil
type errorDecoder func(body string) *models.ErrorResponse

// call runs the request/decode/raise pattern shared by every operation other
// than payment submission. A success status with an empty body yields a nil
// result only where the table allows it.
func call[T any](ctx context.Context, c *Connector, table classify.Table, req transport.Request) (*T, int, error) {
	return callDecoding[T](ctx, c, table, req, decodeErrorResponse)
}

func callDecoding[T any](ctx context.Context, c *Connector, table classify.Table, req transport.Request, decodeErr errorDecoder) (*T, int, error) {
	resp, finish := c.send(ctx, table.Name, req)

	result, err := decodeResponse[T](table, resp, decodeErr)
	finish(err)
	return result, resp.StatusCode, err
}

func decodeResponse[T any](table classify.Table, resp transport.Response, decodeErr errorDecoder) (*T, error) {
	if resp.Failed() {
		return nil, transportFailure(resp)
	}

	if classify.Classify(table, resp.StatusCode, "") != classify.VerdictSuccess {
		return nil, responseFailure(resp, decodeErr)
	}

	if resp.Body == "" {
		if table.AllowsEmpty(resp.StatusCode) {
			return nil, nil
		}
		return nil, pkgerrors.NewGenericFailure(emptyBodyMessage(resp.StatusCode), resp.StatusCode, nil)
	}

	var out T
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		return nil, pkgerrors.NewGenericFailure(
			"failed to decode "+table.Name+" response",
			pkgerrors.MalformedStatusCode,
			fmt.Errorf("%w: %v", pkgerrors.ErrMalformedResponse, err),
		)
	}
	return &out, nil
}

func transportFailure(resp transport.Response) error {
	return pkgerrors.NewGenericFailure(resp.Body, resp.StatusCode, stderrors.Join(pkgerrors.ErrTransport, resp.Err))
}

// responseFailure maps an unexpected status onto the taxonomy
func responseFailure(resp transport.Response, decodeErr errorDecoder) error {
	if resp.Body == "" {
		return pkgerrors.NewGenericFailure(emptyBodyMessage(resp.StatusCode), resp.StatusCode, nil)
	}
	if classify.IsErrorRange(resp.StatusCode) {
		if errResp := decodeErr(resp.Body); errResp != nil {
			return pkgerrors.NewStructuredFailure(strconv.Itoa(resp.StatusCode), errResp, resp.StatusCode)
		}
	}
	return pkgerrors.NewGenericFailure(pkgerrors.StatusMessage(resp.StatusCode, resp.Body), resp.StatusCode, nil)
}

// decodeErrorResponse returns nil unless body is a structured error
func decodeErrorResponse(body string) *models.ErrorResponse {
	var errResp models.ErrorResponse
	if err := json.Unmarshal([]byte(body), &errResp); err != nil || errResp.IsZero() {
		return nil
	}
	return &errResp
}

// decodeGatewayError reads the nested error shape of the transaction gateway
func decodeGatewayError(body string) *models.ErrorResponse {
	var gatewayErr models.ErrorInternalTokenResponse
	if err := json.Unmarshal([]byte(body), &gatewayErr); err == nil {
		if errResp := gatewayErr.ToErrorResponse(); !errResp.IsZero() {
			return errResp
		}
	}
	return decodeErrorResponse(body)
}

func emptyBodyMessage(statusCode int) string {
	return fmt.Sprintf("%d - empty response body", statusCode)
}
