package decidir

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kevin07696/decidir-go/internal/classify"
	"github.com/kevin07696/decidir-go/internal/transport"
	pkgerrors "github.com/kevin07696/decidir-go/pkg/errors"
	"github.com/kevin07696/decidir-go/pkg/models"
	"github.com/shopspring/decimal"
)

// Refund refunds the full amount of a payment
func (c *Connector) Refund(ctx context.Context, paymentID int64) (*models.RefundPaymentResponse, error) {
	return c.createRefund(ctx, paymentID, "{}")
}

// RefundSubPayment refunds individual legs of a distributed payment
func (c *Connector) RefundSubPayment(ctx context.Context, paymentID int64, req *models.RefundSubPaymentRequest) (*models.RefundPaymentResponse, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("refund", "sub-payment refund is required")
	}

	body, err := toJSON(req)
	if err != nil {
		return nil, err
	}
	return c.createRefund(ctx, paymentID, body)
}

// PartialRefund refunds part of a payment; the amount is in minor units
func (c *Connector) PartialRefund(ctx context.Context, paymentID int64, amount models.RefundAmount) (*models.RefundPaymentResponse, error) {
	if amount.Amount <= 0 {
		return nil, pkgerrors.NewValidationError("amount", "refund amount must be positive")
	}

	body, err := toJSON(amount)
	if err != nil {
		return nil, err
	}
	return c.createRefund(ctx, paymentID, body)
}

// PartialRefundDecimal refunds part of a payment given in major units
// (e.g. 12.50). Amounts finer than a cent are rejected.
func (c *Connector) PartialRefundDecimal(ctx context.Context, paymentID int64, amount decimal.Decimal) (*models.RefundPaymentResponse, error) {
	cents, err := ToMinorUnits(amount)
	if err != nil {
		return nil, err
	}
	return c.PartialRefund(ctx, paymentID, models.RefundAmount{Amount: cents})
}

// ToMinorUnits converts a major-unit amount into cents
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2)
	if !cents.IsInteger() {
		return 0, pkgerrors.NewValidationError("amount", "amount has more than two decimal places: "+amount.String())
	}
	return cents.IntPart(), nil
}

func (c *Connector) createRefund(ctx context.Context, paymentID int64, body string) (*models.RefundPaymentResponse, error) {
	result, status, err := call[models.RefundPaymentResponse](ctx, c, classify.Refund, transport.Request{
		Method:  http.MethodPost,
		URL:     c.paymentURL(paymentID) + "/refunds",
		Body:    body,
		Headers: c.headers,
	})
	if result != nil {
		result.StatusCode = status
	}
	return result, err
}

// DeleteRefund annuls a refund
func (c *Connector) DeleteRefund(ctx context.Context, paymentID, refundID int64) (*models.RefundResponse, error) {
	result, status, err := call[models.RefundResponse](ctx, c, classify.DeleteRefund, transport.Request{
		Method:  http.MethodDelete,
		URL:     c.paymentURL(paymentID) + "/refunds/" + strconv.FormatInt(refundID, 10),
		Headers: c.headers,
	})
	if result != nil {
		result.StatusCode = status
	}
	return result, err
}

// DeletePartialRefund annuls a partial refund
func (c *Connector) DeletePartialRefund(ctx context.Context, paymentID, refundID int64) (*models.RefundResponse, error) {
	return c.DeleteRefund(ctx, paymentID, refundID)
}
