package decidir

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kevin07696/decidir-go/pkg/errors"
	"github.com/kevin07696/decidir-go/pkg/models"
)

const refundsRoute = "/api/v2/payments/{id}/refunds"

func TestRefund(t *testing.T) {
	c, fake := newTestConnector(t)
	fake.Respond(http.MethodPost, refundsRoute, http.StatusCreated, `{"id":123,"amount":500}`)

	refund, err := c.Refund(context.Background(), 9001)

	require.NoError(t, err)
	require.NotNil(t, refund)
	assert.Equal(t, int64(123), refund.ID)
	assert.Equal(t, int64(500), refund.Amount)
	assert.Equal(t, http.StatusCreated, refund.StatusCode)

	req, _ := fake.LastRequest()
	assert.Equal(t, "/api/v2/payments/9001/refunds", req.Path)
	assert.Equal(t, "{}", string(req.Body))
}

func TestRefund_ErrorBodyOfUnexpectedShape(t *testing.T) {
	c, fake := newTestConnector(t)
	fake.Respond(http.MethodPost, refundsRoute, http.StatusBadRequest,
		`{"error_type":"invalid_status_error","validation_errors":{"status":"refunded"}}`)

	_, err := c.Refund(context.Background(), 9001)

	var generic *pkgerrors.GenericFailure
	require.ErrorAs(t, err, &generic)
	assert.Equal(t, http.StatusBadRequest, generic.StatusCode())
}

func TestPartialRefund(t *testing.T) {
	t.Run("sends the amount", func(t *testing.T) {
		c, fake := newTestConnector(t)
		fake.Respond(http.MethodPost, refundsRoute, http.StatusCreated, `{"id":124,"amount":250}`)

		refund, err := c.PartialRefund(context.Background(), 9001, models.RefundAmount{Amount: 250})

		require.NoError(t, err)
		assert.Equal(t, int64(250), refund.Amount)

		req, _ := fake.LastRequest()
		assert.JSONEq(t, `{"amount":250}`, string(req.Body))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		c, fake := newTestConnector(t)

		_, err := c.PartialRefund(context.Background(), 9001, models.RefundAmount{Amount: 0})

		var validationErr *pkgerrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Empty(t, fake.Requests())
	})
}

func TestPartialRefundDecimal(t *testing.T) {
	c, fake := newTestConnector(t)
	fake.Respond(http.MethodPost, refundsRoute, http.StatusCreated, `{"id":125,"amount":1250}`)

	refund, err := c.PartialRefundDecimal(context.Background(), 9001, decimal.RequireFromString("12.50"))

	require.NoError(t, err)
	assert.Equal(t, int64(1250), refund.Amount)

	req, _ := fake.LastRequest()
	assert.JSONEq(t, `{"amount":1250}`, string(req.Body))
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount  string
		want    int64
		wantErr bool
	}{
		{amount: "12.50", want: 1250},
		{amount: "0.01", want: 1},
		{amount: "100", want: 10000},
		{amount: "12.345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := ToMinorUnits(decimal.RequireFromString(tt.amount))

			if tt.wantErr {
				var validationErr *pkgerrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefundSubPayment(t *testing.T) {
	c, fake := newTestConnector(t)
	fake.Respond(http.MethodPost, refundsRoute, http.StatusCreated, `{"id":126,"amount":300,"sub_payments":[{"site_id":"s1","amount":300}]}`)

	refund, err := c.RefundSubPayment(context.Background(), 9001, &models.RefundSubPaymentRequest{
		SubPayments: []models.RefundSubPayment{{ID: 1, Amount: 300}},
	})

	require.NoError(t, err)
	require.Len(t, refund.SubPayments, 1)

	req, _ := fake.LastRequest()
	assert.JSONEq(t, `{"sub_payments":[{"id":1,"amount":300}]}`, string(req.Body))
}

func TestDeleteRefund(t *testing.T) {
	c, fake := newTestConnector(t)
	fake.Respond(http.MethodDelete, refundsRoute+"/{refundID}", http.StatusOK, `{"id":123,"amount":500,"status":"annulled"}`)

	refund, err := c.DeleteRefund(context.Background(), 9001, 123)

	require.NoError(t, err)
	assert.Equal(t, "annulled", refund.Status)
	assert.Equal(t, http.StatusOK, refund.StatusCode)

	req, _ := fake.LastRequest()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/v2/payments/9001/refunds/123", req.Path)
	assert.Empty(t, req.Header.Get("Content-Type"))

	_, err = c.DeletePartialRefund(context.Background(), 9001, 123)
	require.NoError(t, err)
	assert.Len(t, fake.Requests(), 2)
}
