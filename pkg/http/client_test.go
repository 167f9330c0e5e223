package http

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	client := NewHTTPClient(nil, 0)

	assert.Equal(t, DefaultTimeout, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
	assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestNewHTTPClient_CustomTimeout(t *testing.T) {
	cfg := DecidirClientConfig()
	cfg.InsecureSkipVerify = true

	client := NewHTTPClient(cfg, 5*time.Second)

	assert.Equal(t, 5*time.Second, client.Timeout)
	transport := client.Transport.(*http.Transport)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
}
