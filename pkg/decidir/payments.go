package decidir

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kevin07696/decidir-go/internal/classify"
	"github.com/kevin07696/decidir-go/internal/transport"
	pkgerrors "github.com/kevin07696/decidir-go/pkg/errors"
	"github.com/kevin07696/decidir-go/pkg/models"
)

// Verdict is the outcome category of a payment response
type Verdict = classify.Verdict

// Payment verdicts
const (
	VerdictError              = classify.VerdictError
	VerdictSuccess            = classify.VerdictSuccess
	VerdictPendingChallenge   = classify.VerdictPendingChallenge
	VerdictPendingFingerprint = classify.VerdictPendingFingerprint
	VerdictAcceptedAsync      = classify.VerdictAcceptedAsync
)

// Outcome is the result of a payment submission as a value. Exactly one of
// Payment, ThreeDS or Err is meaningful:
//   - VerdictSuccess: Payment holds the decoded payment
//   - pending verdicts: ThreeDS holds the data needed to continue
//   - VerdictError: Err holds a pkg/errors failure
type Outcome struct {
	Verdict    Verdict
	StatusCode int
	Payment    *models.PaymentResponse
	ThreeDS    *models.ThreeDSResponse
	Err        error

	body string
}

// Result converts the outcome into the error-returning form. Pending
// verdicts become a *errors.ThreeDSContinuation.
func (o *Outcome) Result() (*models.PaymentResponse, error) {
	if o.Err != nil {
		return nil, o.Err
	}
	if o.Verdict.IsPending() {
		return nil, pkgerrors.NewThreeDSContinuation(pkgerrors.StatusMessage(o.StatusCode, o.body), o.ThreeDS, o.StatusCode)
	}
	return o.Payment, nil
}

// Payment submits a payment. A payment waiting on 3-D Secure is reported as
// a *errors.ThreeDSContinuation; continue it with InstructionThreeDS.
func (c *Connector) Payment(ctx context.Context, payment *models.Payment) (*models.PaymentResponse, error) {
	return c.PaymentOutcome(ctx, payment).Result()
}

// PaymentOutcome submits a payment and reports pending 3-D Secure states as
// values instead of errors.
//
// Pending markers in the body are only honoured when the payment requires
// cardholder authentication. Without it, an unexpected non-error status still
// yields the decoded payment.
func (c *Connector) PaymentOutcome(ctx context.Context, payment *models.Payment) *Outcome {
	if payment == nil {
		return &Outcome{Err: pkgerrors.NewValidationError("payment", "payment is required")}
	}

	body, err := toJSON(payment)
	if err != nil {
		return &Outcome{Err: err}
	}

	table := classify.Payment
	if payment.CardholderAuthRequired {
		table = classify.PaymentThreeDS
	}

	return c.submitPayment(ctx, table, transport.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.payments + "payments",
		Body:    body,
		Headers: c.headers,
	}, payment.CardholderAuthRequired)
}

// InstructionThreeDS continues a pending 3-D Secure flow on behalf of
// username. Another pending state is reported as a *errors.ThreeDSContinuation.
func (c *Connector) InstructionThreeDS(ctx context.Context, username string, instruction *models.Instruction3DSData) (*models.PaymentResponse, error) {
	if instruction == nil {
		return nil, pkgerrors.NewValidationError("instruction", "instruction is required")
	}

	body, err := toJSON(instruction)
	if err != nil {
		return nil, err
	}

	return c.submitPayment(ctx, classify.Instruction, transport.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.payments + "threeds/instruction",
		Body:    body,
		Headers: c.headers.With(headerConsumerUsername, username),
	}, true).Result()
}

func (c *Connector) submitPayment(ctx context.Context, table classify.Table, req transport.Request, detectPending bool) *Outcome {
	resp, finish := c.send(ctx, table.Name, req)

	out := resolvePayment(table, resp, detectPending)
	_, err := out.Result()
	finish(err)
	return out
}

// resolvePayment turns a payment response into an Outcome
func resolvePayment(table classify.Table, resp transport.Response, detectPending bool) *Outcome {
	out := &Outcome{StatusCode: resp.StatusCode, body: resp.Body}

	if resp.Failed() {
		out.Err = transportFailure(resp)
		return out
	}

	payment, err := decodePayment(resp)
	if err != nil {
		out.Err = err
		return out
	}

	bodyStatus := ""
	if detectPending && payment != nil {
		bodyStatus = payment.Status
	}

	out.Verdict = classify.Classify(table, resp.StatusCode, bodyStatus)
	switch {
	case out.Verdict.IsPending():
		out.ThreeDS = decodeThreeDS(resp)
		return out
	case out.Verdict != classify.VerdictSuccess:
		if failure := paymentFailure(resp, payment, detectPending); failure != nil {
			out.Err = failure
			return out
		}
		out.Verdict = classify.VerdictSuccess
	}

	if payment == nil {
		out.Verdict = classify.VerdictError
		out.Err = pkgerrors.NewGenericFailure(emptyBodyMessage(resp.StatusCode), resp.StatusCode, nil)
		return out
	}
	out.Payment = payment
	return out
}

// decodePayment decodes a non-empty body. Any body that does not decode as
// a payment object fails with the synthesized 502 error.
func decodePayment(resp transport.Response) (*models.PaymentResponse, error) {
	if resp.Body == "" {
		return nil, nil
	}

	var payment models.PaymentResponse
	if err := json.Unmarshal([]byte(resp.Body), &payment); err != nil {
		return nil, pkgerrors.NewPaymentFailure(
			pkgerrors.MalformedMessage,
			pkgerrors.MalformedErrorResponse(),
			nil,
			pkgerrors.MalformedStatusCode,
			fmt.Errorf("%w: %v", pkgerrors.ErrMalformedResponse, err),
		)
	}

	payment.StatusCode = resp.StatusCode
	return &payment, nil
}

func decodeThreeDS(resp transport.Response) *models.ThreeDSResponse {
	threeDS := &models.ThreeDSResponse{}
	if resp.Body != "" {
		if err := json.Unmarshal([]byte(resp.Body), threeDS); err != nil {
			threeDS = &models.ThreeDSResponse{}
		}
	}
	threeDS.StatusCode = resp.StatusCode
	return threeDS
}

// paymentFailure maps a payment response the table does not accept. It
// returns nil when the payment should be handed back as is.
func paymentFailure(resp transport.Response, payment *models.PaymentResponse, detectPending bool) error {
	status := resp.StatusCode
	errorRange := classify.IsErrorRange(status)

	if errorRange && resp.Body == "" {
		return pkgerrors.NewGenericFailure(emptyBodyMessage(status), status, nil)
	}

	if status == http.StatusPaymentRequired {
		return pkgerrors.NewPaymentFailure(pkgerrors.StatusMessage(status, resp.Body), decodeErrorResponse(resp.Body), payment, status, nil)
	}

	if errorRange {
		if errResp := decodeErrorResponse(resp.Body); errResp != nil {
			return pkgerrors.NewPaymentFailure(strconv.Itoa(status), errResp, payment, status, nil)
		}
		return pkgerrors.NewGenericFailure(pkgerrors.StatusMessage(status, resp.Body), status, nil)
	}

	if detectPending {
		return pkgerrors.NewPaymentFailure(pkgerrors.StatusMessage(status, resp.Body), nil, payment, status, nil)
	}
	return nil
}

// CapturePayment captures amount (minor units) of a pre-approved payment.
// A capture answered with 204 returns nil, nil.
func (c *Connector) CapturePayment(ctx context.Context, paymentID int64, amount int64) (*models.CapturePaymentResponse, error) {
	body, err := toJSON(models.RefundAmount{Amount: amount})
	if err != nil {
		return nil, err
	}

	result, status, err := call[models.CapturePaymentResponse](ctx, c, classify.Capture, transport.Request{
		Method:  http.MethodPut,
		URL:     c.paymentURL(paymentID),
		Body:    body,
		Headers: c.headers,
	})
	if result != nil {
		result.StatusCode = status
	}
	return result, err
}

// GetPaymentInfo retrieves a payment including its card data
func (c *Connector) GetPaymentInfo(ctx context.Context, paymentID int64) (*models.PaymentResponse, error) {
	result, status, err := call[models.PaymentResponse](ctx, c, classify.PaymentInfo, transport.Request{
		Method:  http.MethodGet,
		URL:     c.paymentURL(paymentID) + "?expand=card_data",
		Headers: c.headers,
	})
	if result != nil {
		result.StatusCode = status
	}
	return result, err
}

func (c *Connector) paymentURL(paymentID int64) string {
	return c.endpoints.payments + "payments/" + strconv.FormatInt(paymentID, 10)
}

// ListPaymentsParams filters GetAllPayments. Zero values are omitted.
type ListPaymentsParams struct {
	Offset          int64
	PageSize        int64
	SiteOperationID string
	MerchantID      string
}

func (p ListPaymentsParams) query() url.Values {
	q := url.Values{}
	if p.Offset > 0 {
		q.Set("offset", strconv.FormatInt(p.Offset, 10))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.FormatInt(p.PageSize, 10))
	}
	if p.SiteOperationID != "" {
		q.Set("siteOperationId", p.SiteOperationID)
	}
	if p.MerchantID != "" {
		q.Set("merchantId", p.MerchantID)
	}
	return q
}

// GetAllPayments lists the site's payments
func (c *Connector) GetAllPayments(ctx context.Context, params ListPaymentsParams) (*models.GetAllPaymentsResponse, error) {
	u := c.endpoints.payments + "payments"
	if q := params.query(); len(q) > 0 {
		u += "?" + q.Encode()
	}

	result, _, err := call[models.GetAllPaymentsResponse](ctx, c, classify.ListPayments, transport.Request{
		Method:  http.MethodGet,
		URL:     u,
		Headers: c.headers,
	})
	return result, err
}
