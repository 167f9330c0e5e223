package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// DefaultTimeout is the per-request ceiling the Decidir API has always been called with
const DefaultTimeout = 900 * time.Second

// HTTPClientConfig holds HTTP client configuration
type HTTPClientConfig struct {
	// Timeouts
	DialTimeout         time.Duration // TCP connection timeout
	TLSHandshakeTimeout time.Duration // TLS handshake timeout
	KeepAlive           time.Duration

	// TLS
	InsecureSkipVerify bool
	MinTLSVersion      uint16
}

// DecidirClientConfig returns the config used for the Decidir API.
// The API requires TLS 1.2.
func DecidirClientConfig() *HTTPClientConfig {
	return &HTTPClientConfig{
		DialTimeout:         30 * time.Second,
		TLSHandshakeTimeout: 30 * time.Second,
		KeepAlive:           60 * time.Second,

		InsecureSkipVerify: false,
		MinTLSVersion:      tls.VersionTLS12,
	}
}

// NewHTTPClient creates an HTTP client with the given configuration.
// timeout bounds the whole request including reading the body; zero means
// DefaultTimeout.
func NewHTTPClient(cfg *HTTPClientConfig, timeout time.Duration) *http.Client {
	if cfg == nil {
		cfg = DecidirClientConfig()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			MinVersion:         cfg.MinTLSVersion,
		},
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
