package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/kevin07696/decidir-go/pkg/models"
)

// Kind identifies which variant of the taxonomy a ResponseError is
type Kind string

const (
	KindGeneric    Kind = "generic"
	KindStructured Kind = "structured"
	KindPayment    Kind = "payment"
	KindThreeDS    Kind = "three_ds_continuation"
)

var (
	// ErrTransport marks failures folded from connection-level errors
	ErrTransport = stderrors.New("transport failure")
	// ErrMalformedResponse marks bodies that could not be decoded
	ErrMalformedResponse = stderrors.New("malformed response body")
)

// Synthesized error body used when a payment response cannot be read
const (
	MalformedStatusCode = 502
	MalformedCode       = "502"
	MalformedErrorType  = "Error en recepción de mensaje"
	MalformedMessage    = "No se pudo leer la respuesta"
)

// MalformedErrorResponse returns the error body reported for unreadable payment responses
func MalformedErrorResponse() *models.ErrorResponse {
	return &models.ErrorResponse{
		Code:      MalformedCode,
		ErrorType: MalformedErrorType,
		Message:   MalformedMessage,
	}
}

// ResponseError is implemented by every failure returned by the client.
// Callers branch on Kind (or errors.As on the concrete type) instead of
// inspecting status codes.
type ResponseError interface {
	error
	Kind() Kind
	Message() string
	StatusCode() int
	ErrorResponse() *models.ErrorResponse
}

type base struct {
	message    string
	statusCode int
	errResp    *models.ErrorResponse
	cause      error
}

func (b *base) Message() string                      { return b.message }
func (b *base) StatusCode() int                      { return b.statusCode }
func (b *base) ErrorResponse() *models.ErrorResponse { return b.errResp }
func (b *base) Unwrap() error                        { return b.cause }

func (b *base) format(kind Kind) string {
	if b.errResp != nil && b.errResp.Message != "" {
		return fmt.Sprintf("decidir %s error (status %d): %s: %s", kind, b.statusCode, b.message, b.errResp.Message)
	}
	return fmt.Sprintf("decidir %s error (status %d): %s", kind, b.statusCode, b.message)
}

// GenericFailure is raised when no structured body is available
type GenericFailure struct{ base }

// NewGenericFailure creates a GenericFailure
func NewGenericFailure(message string, statusCode int, cause error) *GenericFailure {
	return &GenericFailure{base{message: message, statusCode: statusCode, cause: cause}}
}

func (e *GenericFailure) Error() string { return e.format(KindGeneric) }
func (e *GenericFailure) Kind() Kind    { return KindGeneric }

// StructuredFailure carries an error body decoded from an error-range response
type StructuredFailure struct{ base }

// NewStructuredFailure creates a StructuredFailure
func NewStructuredFailure(message string, errResp *models.ErrorResponse, statusCode int) *StructuredFailure {
	return &StructuredFailure{base{message: message, statusCode: statusCode, errResp: errResp}}
}

func (e *StructuredFailure) Error() string { return e.format(KindStructured) }
func (e *StructuredFailure) Kind() Kind    { return KindStructured }

// PaymentFailure is raised by the payment operations. Besides an optional
// error body it may carry the payment-shaped body some error statuses return.
type PaymentFailure struct {
	base
	payment *models.PaymentResponse
}

// NewPaymentFailure creates a PaymentFailure
func NewPaymentFailure(message string, errResp *models.ErrorResponse, payment *models.PaymentResponse, statusCode int, cause error) *PaymentFailure {
	return &PaymentFailure{
		base:    base{message: message, statusCode: statusCode, errResp: errResp, cause: cause},
		payment: payment,
	}
}

func (e *PaymentFailure) Error() string { return e.format(KindPayment) }
func (e *PaymentFailure) Kind() Kind    { return KindPayment }

// Payment returns the partially decoded payment, if any
func (e *PaymentFailure) Payment() *models.PaymentResponse { return e.payment }

// ThreeDSContinuation is not a failure of the payment itself: the payment is
// waiting on a 3-D Secure step and the caller must continue it with
// InstructionThreeDS.
type ThreeDSContinuation struct {
	base
	threeDS *models.ThreeDSResponse
}

// NewThreeDSContinuation creates a ThreeDSContinuation
func NewThreeDSContinuation(message string, threeDS *models.ThreeDSResponse, statusCode int) *ThreeDSContinuation {
	return &ThreeDSContinuation{
		base:    base{message: message, statusCode: statusCode},
		threeDS: threeDS,
	}
}

func (e *ThreeDSContinuation) Error() string { return e.format(KindThreeDS) }
func (e *ThreeDSContinuation) Kind() Kind    { return KindThreeDS }

// ThreeDS returns the challenge or fingerprint data needed to continue
func (e *ThreeDSContinuation) ThreeDS() *models.ThreeDSResponse { return e.threeDS }

// AsResponseError extracts the ResponseError in err's chain
func AsResponseError(err error) (ResponseError, bool) {
	var re ResponseError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// StatusMessage formats the "<status> - <body>" message used for unstructured errors
func StatusMessage(statusCode int, body string) string {
	return strconv.Itoa(statusCode) + " - " + body
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
