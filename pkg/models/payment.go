package models

// Payment statuses reported by Decidir in the "status" field of a payment body
const (
	PaymentStatusApproved           = "approved"
	PaymentStatusRejected           = "rejected"
	PaymentStatusPreApproved        = "pre_approved"
	PaymentStatusPendingChallenge   = "pending_challenge"
	PaymentStatusPendingFingerprint = "pending_fingerprint"
)

// Payment types accepted by the payments endpoint
const (
	PaymentTypeSingle      = "single"
	PaymentTypeDistributed = "distributed"
)

// Payment is the body of a payment creation request.
// Amounts are expressed in minor units (cents).
type Payment struct {
	SiteTransactionID      string         `json:"site_transaction_id"`
	Token                  string         `json:"token,omitempty"`
	Customer               *Customer      `json:"customer,omitempty"`
	PaymentMethodID        int64          `json:"payment_method_id"`
	Bin                    string         `json:"bin,omitempty"`
	Amount                 int64          `json:"amount"`
	Currency               string         `json:"currency,omitempty"`
	Installments           int64          `json:"installments"`
	Description            string         `json:"description,omitempty"`
	PaymentType            string         `json:"payment_type,omitempty"`
	EstablishmentName      string         `json:"establishment_name,omitempty"`
	SubPayments            []SubPayment   `json:"sub_payments"`
	FraudDetection         map[string]any `json:"fraud_detection,omitempty"`
	SiteID                 string         `json:"site_id,omitempty"`
	AggregateData          *AggregateData `json:"aggregate_data,omitempty"`
	CardholderAuthRequired bool           `json:"cardholder_auth_required,omitempty"`
	Auth3DSData            *Auth3DSData   `json:"auth_3ds_data,omitempty"`
}

// Customer identifies the buyer of a payment
type Customer struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
}

// SubPayment is one leg of a distributed payment
type SubPayment struct {
	SiteID       string `json:"site_id,omitempty"`
	Installments int64  `json:"installments,omitempty"`
	Amount       int64  `json:"amount"`
}

// AggregateData carries payment facilitator (aggregator) information
type AggregateData struct {
	Indicator            string `json:"indicator,omitempty"`
	IdentificationNumber string `json:"identification_number,omitempty"`
	BillToPay            string `json:"bill_to_pay,omitempty"`
	BillToRefund         string `json:"bill_to_refund,omitempty"`
	MerchantName         string `json:"merchant_name,omitempty"`
	Street               string `json:"street,omitempty"`
	Number               string `json:"number,omitempty"`
	PostalCode           string `json:"postal_code,omitempty"`
	Category             string `json:"category,omitempty"`
	Channel              string `json:"channel,omitempty"`
	GeographicCode       string `json:"geographic_code,omitempty"`
	City                 string `json:"city,omitempty"`
	MerchantID           string `json:"merchant_id,omitempty"`
	Province             string `json:"province,omitempty"`
	Country              string `json:"country,omitempty"`
	MerchantEmail        string `json:"merchant_email,omitempty"`
	MerchantPhone        string `json:"merchant_phone,omitempty"`
}

// Auth3DSData carries the browser and device data required for 3-D Secure 2
type Auth3DSData struct {
	DeviceType             string `json:"device_type,omitempty"`
	AcceptHeader           string `json:"accept_header,omitempty"`
	UserAgent              string `json:"user_agent,omitempty"`
	IP                     string `json:"ip,omitempty"`
	JavaEnabled            bool   `json:"java_enabled,omitempty"`
	Language               string `json:"language,omitempty"`
	ColorDepth             string `json:"color_depth,omitempty"`
	ScreenHeight           int    `json:"screen_height,omitempty"`
	ScreenWidth            int    `json:"screen_width,omitempty"`
	TimeZoneOffset         int    `json:"time_zone_offset,omitempty"`
	ChallengeWindowSize    string `json:"challenge_window_size,omitempty"`
	DeviceUniqueIdentifier string `json:"device_unique_identifier,omitempty"`
}

// PaymentResponse is the decoded body of a payment.
// StatusCode is not part of the wire format; it is set after decoding.
type PaymentResponse struct {
	ID                             int64          `json:"id"`
	SiteTransactionID              string         `json:"site_transaction_id,omitempty"`
	PaymentMethodID                int64          `json:"payment_method_id,omitempty"`
	CardBrand                      string         `json:"card_brand,omitempty"`
	Amount                         int64          `json:"amount"`
	Currency                       string         `json:"currency,omitempty"`
	Status                         string         `json:"status,omitempty"`
	StatusDetails                  *StatusDetails `json:"status_details,omitempty"`
	Date                           string         `json:"date,omitempty"`
	Customer                       *Customer      `json:"customer,omitempty"`
	Bin                            string         `json:"bin,omitempty"`
	Installments                   int64          `json:"installments,omitempty"`
	FirstInstallmentExpirationDate string         `json:"first_installment_expiration_date,omitempty"`
	PaymentType                    string         `json:"payment_type,omitempty"`
	SubPayments                    []SubPayment   `json:"sub_payments,omitempty"`
	SiteID                         string         `json:"site_id,omitempty"`
	FraudDetection                 map[string]any `json:"fraud_detection,omitempty"`
	AggregateData                  *AggregateData `json:"aggregate_data,omitempty"`
	EstablishmentName              string         `json:"establishment_name,omitempty"`
	Confirmed                      map[string]any `json:"confirmed,omitempty"`
	Pan                            string         `json:"pan,omitempty"`
	CustomerToken                  string         `json:"customer_token,omitempty"`
	CardData                       string         `json:"card_data,omitempty"`
	Token                          string         `json:"token,omitempty"`

	StatusCode int `json:"-"`
}

// StatusDetails holds the acquirer-level detail of a payment decision
type StatusDetails struct {
	Ticket                string        `json:"ticket,omitempty"`
	CardAuthorizationCode string        `json:"card_authorization_code,omitempty"`
	AddressValidationCode string        `json:"address_validation_code,omitempty"`
	Error                 *PaymentError `json:"error,omitempty"`
}

// PaymentError describes why the acquirer rejected a payment
type PaymentError struct {
	Type   string              `json:"type,omitempty"`
	Reason *PaymentErrorReason `json:"reason,omitempty"`
}

// PaymentErrorReason is the coded rejection reason
type PaymentErrorReason struct {
	ID                    int64  `json:"id"`
	Description           string `json:"description,omitempty"`
	AdditionalDescription string `json:"additional_description,omitempty"`
}

// ThreeDSResponse is the partially decoded payload of a payment that must
// continue through a 3-D Secure challenge or fingerprint step.
type ThreeDSResponse struct {
	ID         int64          `json:"id"`
	Status     string         `json:"status,omitempty"`
	TargetURL  string         `json:"target_url,omitempty"`
	HTTPMethod string         `json:"http_method,omitempty"`
	Params     map[string]any `json:"params,omitempty"`

	StatusCode int `json:"-"`
}

// Instruction3DSData continues a pending 3-D Secure flow
type Instruction3DSData struct {
	PaymentID        int64  `json:"id,omitempty"`
	InstructionValue string `json:"instruction_value"`
}

// CapturePaymentResponse is returned when a capture yields a body
type CapturePaymentResponse struct {
	ID            int64          `json:"id"`
	Amount        int64          `json:"amount"`
	Status        string         `json:"status,omitempty"`
	StatusDetails *StatusDetails `json:"status_details,omitempty"`
	Date          string         `json:"date,omitempty"`
	SubPayments   []SubPayment   `json:"sub_payments,omitempty"`
	StatusCode    int            `json:"-"`
}

// GetAllPaymentsResponse is a page of payments
type GetAllPaymentsResponse struct {
	Limit   int64             `json:"limit"`
	Offset  int64             `json:"offset"`
	Results []PaymentResponse `json:"results"`
	HasMore bool              `json:"has_more"`
}
