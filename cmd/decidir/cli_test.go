package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/kevin07696/decidir-go/internal/adapters/secrets"
	"github.com/kevin07696/decidir-go/internal/config"
	"github.com/kevin07696/decidir-go/internal/decidirfake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCLI(t *testing.T) (*DecidirCLI, *decidirfake.Server, *bytes.Buffer, *prometheus.Registry) {
	t.Helper()

	fake := decidirfake.New(t)
	reg := prometheus.NewRegistry()
	connector, err := newConnector(config.DecidirConfig{
		Host:    fake.URL,
		Path:    decidirfake.PaymentsPath,
		Timeout: 5,
		Charset: "utf-8",
	}, &secrets.Credentials{PrivateKey: "private-key", PublicKey: "public-key"}, zap.NewNop(), reg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &DecidirCLI{ctx: context.Background(), connector: connector, out: out}, fake, out, reg
}

func writeJSONFile(t *testing.T, v string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(v), 0600))
	return path
}

func TestRun_HealthCheck(t *testing.T) {
	cli, fake, out, reg := newTestCLI(t)
	fake.Respond(http.MethodGet, "/api/v2/healthcheck", http.StatusOK, `{"name":"coretx","version":"2.6.4","build_time":"2024-03-01"}`)

	require.NoError(t, cli.Run("healthcheck", actionArgs{}))

	assert.JSONEq(t, `{"name":"coretx","version":"2.6.4","build_time":"2024-03-01"}`, out.String())
	count, err := testutil.GatherAndCount(reg, "decidir_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRun_Payment(t *testing.T) {
	cli, fake, out, _ := newTestCLI(t)
	fake.Respond(http.MethodPost, "/api/v2/payments", http.StatusCreated, `{"id":42,"status":"approved","amount":15025}`)

	path := writeJSONFile(t, `{"token":"tok","payment_method_id":1,"currency":"ARS","installments":1,"sub_payments":[]}`)

	require.NoError(t, cli.Run("payment", actionArgs{jsonFile: path, amount: "150.25"}))

	req, ok := fake.LastRequest()
	require.True(t, ok)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.Equal(t, 15025.0, sent["amount"])
	_, err := uuid.Parse(sent["site_transaction_id"].(string))
	assert.NoError(t, err)

	assert.Contains(t, out.String(), `"status": "approved"`)
}

func TestRun_PaymentRejectsFractionalCents(t *testing.T) {
	cli, fake, _, _ := newTestCLI(t)
	path := writeJSONFile(t, `{"token":"tok","payment_method_id":1}`)

	err := cli.Run("payment", actionArgs{jsonFile: path, amount: "1.005"})

	require.Error(t, err)
	assert.Empty(t, fake.Requests())
}

func TestRun_PartialRefund(t *testing.T) {
	cli, fake, out, _ := newTestCLI(t)
	fake.Respond(http.MethodPost, "/api/v2/payments/{id}/refunds", http.StatusCreated, `{"id":9,"amount":1000,"status":"approved"}`)

	require.NoError(t, cli.Run("partial-refund", actionArgs{paymentID: 42, amount: "10"}))

	req, _ := fake.LastRequest()
	assert.Equal(t, "/api/v2/payments/42/refunds", req.Path)
	assert.JSONEq(t, `{"amount":1000}`, string(req.Body))
	assert.Contains(t, out.String(), `"id": 9`)
}

func TestRun_DeleteCardToken(t *testing.T) {
	cli, fake, out, _ := newTestCLI(t)
	fake.Respond(http.MethodDelete, "/api/v2/cardtokens/{token}", http.StatusNoContent, "")

	require.NoError(t, cli.Run("delete-card-token", actionArgs{cardToken: "abc"}))

	assert.JSONEq(t, `{"deleted":true}`, out.String())
}

func TestRun_ArgumentValidation(t *testing.T) {
	tests := []struct {
		name   string
		action string
		args   actionArgs
	}{
		{name: "payment info without id", action: "payment-info"},
		{name: "refund without id", action: "refund"},
		{name: "delete refund without refund id", action: "delete-refund", args: actionArgs{paymentID: 1}},
		{name: "capture with bad amount", action: "capture", args: actionArgs{paymentID: 1, amount: "ten"}},
		{name: "token without file", action: "token"},
		{name: "card tokens without user", action: "card-tokens"},
		{name: "unknown action", action: "launch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, fake, _, _ := newTestCLI(t)

			assert.Error(t, cli.Run(tt.action, tt.args))
			assert.Empty(t, fake.Requests())
		})
	}
}

func TestReportError(t *testing.T) {
	t.Run("three ds continuation", func(t *testing.T) {
		cli, fake, out, _ := newTestCLI(t)
		fake.Respond(http.MethodPost, "/api/v2/payments", http.StatusAccepted,
			`{"id":77,"status":"pending_challenge","target_url":"https://acs.example/challenge"}`)
		path := writeJSONFile(t, `{"site_transaction_id":"tx-1","token":"tok","cardholder_auth_required":true}`)

		err := cli.Run("payment", actionArgs{jsonFile: path})
		require.Error(t, err)
		require.True(t, cli.reportError(err))

		var report map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, "three_ds_continuation", report["kind"])
		assert.Equal(t, 202.0, report["status_code"])
		threeDS := report["three_ds"].(map[string]any)
		assert.Equal(t, "https://acs.example/challenge", threeDS["target_url"])
	})

	t.Run("structured failure", func(t *testing.T) {
		cli, fake, out, _ := newTestCLI(t)
		fake.Respond(http.MethodGet, "/api/v2/payments/{id}", http.StatusNotFound, `{"error_type":"not_found_error","entity_name":"","id":"1"}`)

		err := cli.Run("payment-info", actionArgs{paymentID: 1})
		require.Error(t, err)
		require.True(t, cli.reportError(err))

		var report map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, 404.0, report["status_code"])
		assert.Equal(t, "404", report["message"])
	})

	t.Run("non response error", func(t *testing.T) {
		cli, _, out, _ := newTestCLI(t)

		assert.False(t, cli.reportError(assert.AnError))
		assert.Empty(t, out.String())
	})
}

func TestNewConnector_Environment(t *testing.T) {
	connector, err := newConnector(config.DecidirConfig{Environment: "production", Timeout: 1, Charset: "iso-8859-1"},
		&secrets.Credentials{PrivateKey: "p"}, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://live.decidir.com/api/v2/", connector.Endpoint())

	_, err = newConnector(config.DecidirConfig{Environment: "staging", Timeout: 1}, &secrets.Credentials{PrivateKey: "p"}, zap.NewNop(), nil)
	assert.Error(t, err)
}

func TestResolveCredentials(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		cfg := &config.Config{Decidir: config.DecidirConfig{PrivateKey: "priv", PublicKey: "pub"}}

		creds, err := resolveCredentials(context.Background(), cfg, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, "priv", creds.PrivateKey)
		assert.Equal(t, "pub", creds.PublicKey)
	})

	t.Run("local store with environment override", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "creds.json"),
			[]byte(`{"private_key":"stored-priv","public_key":"stored-pub","merchant":"m-1"}`), 0600))

		cfg := &config.Config{
			Decidir: config.DecidirConfig{PublicKey: "env-pub"},
			Secrets: config.SecretsConfig{Backend: config.SecretsBackendLocal, LocalDir: dir, Path: "creds.json"},
		}

		creds, err := resolveCredentials(context.Background(), cfg, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, "stored-priv", creds.PrivateKey)
		assert.Equal(t, "env-pub", creds.PublicKey)
		assert.Equal(t, "m-1", creds.Merchant)
	})
}

func TestCharsetFor(t *testing.T) {
	assert.Nil(t, charsetFor("utf-8"))
	assert.NotNil(t, charsetFor("iso-8859-1"))
}
