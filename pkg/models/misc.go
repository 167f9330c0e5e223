package models

// HealthCheckResponse is the body of the health probe
type HealthCheckResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
}

// ValidateData is the body of a payment form validation
type ValidateData struct {
	SiteTransactionID string         `json:"site_transaction_id"`
	Currency          string         `json:"currency,omitempty"`
	Amount            int64          `json:"amount"`
	EmailCustomer     string         `json:"email_customer,omitempty"`
	PaymentMethodID   int64          `json:"payment_method_id,omitempty"`
	SuccessURL        string         `json:"success_url,omitempty"`
	CancelURL         string         `json:"cancel_url,omitempty"`
	RedirectURL       string         `json:"redirect_url,omitempty"`
	CancelRedirectURL string         `json:"cancel_redirect_url,omitempty"`
	Installments      []int64        `json:"installments,omitempty"`
	PlanGobierno      bool           `json:"plan_gobierno,omitempty"`
	Site              string         `json:"site,omitempty"`
	PublicApiKey      string         `json:"public_apikey,omitempty"`
	TemplateID        int64          `json:"template_id,omitempty"`
	FraudDetection    map[string]any `json:"fraud_detection,omitempty"`
}

// ValidateResponse carries the hash of a validated payment form
type ValidateResponse struct {
	Hash string `json:"hash"`

	StatusCode int `json:"-"`
}

// BatchClosureRequest closes the open batch of a site, optionally for a given date
type BatchClosureRequest struct {
	SiteID string `json:"site_id,omitempty"`
	Date   string `json:"date,omitempty"`
}

// BatchClosureResponse is the result of an end-of-day batch closure
type BatchClosureResponse struct {
	ID     int64  `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Date   string `json:"date,omitempty"`

	StatusCode int `json:"-"`
}
