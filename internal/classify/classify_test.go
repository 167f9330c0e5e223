package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		table      Table
		status     int
		bodyStatus string
		expected   Verdict
	}{
		{"payment created", PaymentThreeDS, 201, "approved", VerdictSuccess},
		{"payment created without body status", Payment, 201, "", VerdictSuccess},
		{"pending challenge on 202", PaymentThreeDS, 202, "pending_challenge", VerdictPendingChallenge},
		{"pending fingerprint on 202", PaymentThreeDS, 202, "pending_fingerprint", VerdictPendingFingerprint},
		{"pending marker wins over created", PaymentThreeDS, 201, "pending_challenge", VerdictPendingChallenge},
		{"accepted without marker", PaymentThreeDS, 202, "", VerdictAcceptedAsync},
		{"accepted on plain payment table", Payment, 202, "", VerdictError},
		{"pending marker ignored on error status", PaymentThreeDS, 402, "pending_challenge", VerdictError},
		{"pending marker on 200", PaymentThreeDS, 200, "pending_fingerprint", VerdictPendingFingerprint},
		{"pending marker on 204", Capture, 204, "pending_challenge", VerdictPendingChallenge},
		{"other pending-like status is not a marker", PaymentThreeDS, 201, "pending", VerdictSuccess},
		{"bad request", Payment, 400, "", VerdictError},
		{"server error", Payment, 500, "", VerdictError},
		{"capture ok", Capture, 200, "", VerdictSuccess},
		{"capture no content", Capture, 204, "", VerdictSuccess},
		{"capture created is unexpected", Capture, 201, "", VerdictError},
		{"refund created", Refund, 201, "", VerdictSuccess},
		{"refund ok is unexpected", Refund, 200, "", VerdictError},
		{"refund deletion", DeleteRefund, 200, "", VerdictSuccess},
		{"health", HealthCheck, 200, "", VerdictSuccess},
		{"token", Token, 201, "", VerdictSuccess},
		{"card token deletion", DeleteCardToken, 204, "", VerdictSuccess},
		{"card token deletion not found", DeleteCardToken, 404, "", VerdictError},
		{"validation", Validate, 201, "", VerdictSuccess},
		{"redirect", PaymentInfo, 302, "", VerdictError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.table, tt.status, tt.bodyStatus))
		})
	}
}

func TestClassify_IsIdempotent(t *testing.T) {
	for _, status := range []int{200, 201, 202, 204, 400, 402, 404, 500} {
		for _, bodyStatus := range []string{"", "approved", "pending_challenge", "pending_fingerprint"} {
			first := Classify(PaymentThreeDS, status, bodyStatus)
			second := Classify(PaymentThreeDS, status, bodyStatus)
			assert.Equal(t, first, second, "status %d body %q", status, bodyStatus)
		}
	}
}

func TestIsErrorRange(t *testing.T) {
	assert.False(t, IsErrorRange(200))
	assert.False(t, IsErrorRange(202))
	assert.False(t, IsErrorRange(302))
	assert.True(t, IsErrorRange(400))
	assert.True(t, IsErrorRange(402))
	assert.True(t, IsErrorRange(502))
}

func TestVerdict_IsPending(t *testing.T) {
	assert.True(t, VerdictPendingChallenge.IsPending())
	assert.True(t, VerdictPendingFingerprint.IsPending())
	assert.True(t, VerdictAcceptedAsync.IsPending())
	assert.False(t, VerdictSuccess.IsPending())
	assert.False(t, VerdictError.IsPending())
	assert.Equal(t, "pending_challenge", VerdictPendingChallenge.String())
}

func TestTable_AllowsEmpty(t *testing.T) {
	assert.True(t, Capture.AllowsEmpty(204))
	assert.False(t, Capture.AllowsEmpty(200))
	assert.True(t, DeleteCardToken.AllowsEmpty(204))
	assert.False(t, HealthCheck.AllowsEmpty(200))
	assert.False(t, Refund.AllowsEmpty(201))
	assert.False(t, DeleteRefund.AllowsEmpty(200))
}
