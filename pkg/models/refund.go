package models

// RefundAmount is the body of a partial refund
type RefundAmount struct {
	Amount int64 `json:"amount"`
}

// RefundSubPaymentRequest refunds individual legs of a distributed payment
type RefundSubPaymentRequest struct {
	Amount      int64              `json:"amount,omitempty"`
	SubPayments []RefundSubPayment `json:"sub_payments"`
}

// RefundSubPayment is one leg of a sub-payment refund
type RefundSubPayment struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}

// RefundPaymentResponse is returned when a refund is created
type RefundPaymentResponse struct {
	ID            int64          `json:"id"`
	Amount        int64          `json:"amount"`
	SubPayments   []SubPayment   `json:"sub_payments,omitempty"`
	Status        string         `json:"status,omitempty"`
	StatusDetails *StatusDetails `json:"status_details,omitempty"`

	StatusCode int `json:"-"`
}

// RefundResponse is returned when a refund is annulled
type RefundResponse struct {
	ID          int64        `json:"id"`
	Amount      int64        `json:"amount"`
	SubPayments []SubPayment `json:"sub_payments,omitempty"`
	Status      string       `json:"status,omitempty"`

	StatusCode int `json:"-"`
}
