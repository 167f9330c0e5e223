// Package classify decides which outcome a normalized API response represents.
package classify

import (
	"net/http"

	"github.com/kevin07696/decidir-go/pkg/models"
)

// Verdict is the outcome category of a response
type Verdict int

const (
	// VerdictError - the status is not one the operation expects
	VerdictError Verdict = iota
	// VerdictSuccess - the operation completed
	VerdictSuccess
	// VerdictPendingChallenge - the payment waits on a 3-D Secure challenge
	VerdictPendingChallenge
	// VerdictPendingFingerprint - the payment waits on a 3-D Secure fingerprint
	VerdictPendingFingerprint
	// VerdictAcceptedAsync - the payment was accepted and continues asynchronously
	VerdictAcceptedAsync
)

func (v Verdict) String() string {
	switch v {
	case VerdictError:
		return "error"
	case VerdictSuccess:
		return "success"
	case VerdictPendingChallenge:
		return "pending_challenge"
	case VerdictPendingFingerprint:
		return "pending_fingerprint"
	case VerdictAcceptedAsync:
		return "accepted_async"
	default:
		return "unknown"
	}
}

// IsPending reports whether the verdict requires a 3-D Secure continuation
func (v Verdict) IsPending() bool {
	return v == VerdictPendingChallenge || v == VerdictPendingFingerprint || v == VerdictAcceptedAsync
}

// Table lists the statuses an operation treats as success or as accepted.
// Empty lists the success statuses that may come without a body.
type Table struct {
	Name     string
	Success  []int
	Accepted []int
	Empty    []int
}

// AllowsEmpty reports whether a success answered with statusCode may have no body
func (t Table) AllowsEmpty(statusCode int) bool {
	return contains(t.Empty, statusCode)
}

// Expected status tables per operation
var (
	HealthCheck     = Table{Name: "health_check", Success: []int{http.StatusOK}}
	Payment         = Table{Name: "payment", Success: []int{http.StatusCreated}}
	PaymentThreeDS  = Table{Name: "payment", Success: []int{http.StatusCreated}, Accepted: []int{http.StatusAccepted}}
	Instruction     = Table{Name: "threeds_instruction", Success: []int{http.StatusCreated}, Accepted: []int{http.StatusAccepted}}
	Capture         = Table{Name: "capture", Success: []int{http.StatusOK, http.StatusNoContent}, Empty: []int{http.StatusNoContent}}
	PaymentInfo     = Table{Name: "payment_info", Success: []int{http.StatusOK}}
	ListPayments    = Table{Name: "list_payments", Success: []int{http.StatusOK}}
	Refund          = Table{Name: "refund", Success: []int{http.StatusCreated}}
	DeleteRefund    = Table{Name: "delete_refund", Success: []int{http.StatusOK}}
	Token           = Table{Name: "token", Success: []int{http.StatusCreated}}
	InternalToken   = Table{Name: "internal_token", Success: []int{http.StatusCreated}}
	Cryptogram      = Table{Name: "cryptogram", Success: []int{http.StatusCreated}}
	CardTokens      = Table{Name: "card_tokens", Success: []int{http.StatusOK}}
	DeleteCardToken = Table{Name: "delete_card_token", Success: []int{http.StatusNoContent}, Empty: []int{http.StatusNoContent}}
	Validate        = Table{Name: "validate", Success: []int{http.StatusCreated}}
	BatchClosure    = Table{Name: "batch_closure", Success: []int{http.StatusOK, http.StatusCreated}}
)

// Classify returns the verdict for statusCode under table. bodyStatus is the
// "status" field of the decoded body, or "" when the caller does not check
// pending markers. The result depends only on its arguments.
func Classify(table Table, statusCode int, bodyStatus string) Verdict {
	if isSuccessFamily(statusCode) {
		switch bodyStatus {
		case models.PaymentStatusPendingChallenge:
			return VerdictPendingChallenge
		case models.PaymentStatusPendingFingerprint:
			return VerdictPendingFingerprint
		}
	}
	if contains(table.Accepted, statusCode) {
		return VerdictAcceptedAsync
	}
	if contains(table.Success, statusCode) {
		return VerdictSuccess
	}
	return VerdictError
}

// IsErrorRange reports whether a status is routed to structured error decoding
func IsErrorRange(statusCode int) bool {
	return statusCode >= http.StatusBadRequest
}

func isSuccessFamily(statusCode int) bool {
	switch statusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return true
	}
	return false
}

func contains(codes []int, statusCode int) bool {
	for _, c := range codes {
		if c == statusCode {
			return true
		}
	}
	return false
}
