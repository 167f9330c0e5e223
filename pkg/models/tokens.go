package models

// TokenRequest tokenizes raw card data with the public key
type TokenRequest struct {
	CardNumber               string          `json:"card_number"`
	CardExpirationMonth      string          `json:"card_expiration_month"`
	CardExpirationYear       string          `json:"card_expiration_year"`
	SecurityCode             string          `json:"security_code,omitempty"`
	CardHolderName           string          `json:"card_holder_name"`
	CardHolderIdentification *Identification `json:"card_holder_identification,omitempty"`
	FraudDetection           map[string]any  `json:"fraud_detection,omitempty"`
}

// Identification is a cardholder document
type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// CardTokenBsa tokenizes a card previously stored by the card vault
type CardTokenBsa struct {
	PublicToken              string          `json:"public_token"`
	IssueDate                string          `json:"issue_date"`
	FlagTokenization         string          `json:"flag_tokenization"`
	FlagSecurityCode         string          `json:"flag_security_code"`
	FlagSelectorKey          string          `json:"flag_selector_key"`
	CardHolderName           string          `json:"card_holder_name"`
	CardHolderIdentification *Identification `json:"card_holder_identification,omitempty"`
	FraudDetection           map[string]any  `json:"fraud_detection,omitempty"`
}

// GetTokenResponse is the created card token
type GetTokenResponse struct {
	ID                 string      `json:"id"`
	Status             string      `json:"status,omitempty"`
	CardNumberLength   int         `json:"card_number_length,omitempty"`
	DateCreated        string      `json:"date_created,omitempty"`
	Bin                string      `json:"bin,omitempty"`
	LastFourDigits     string      `json:"last_four_digits,omitempty"`
	SecurityCodeLength int         `json:"security_code_length,omitempty"`
	ExpirationMonth    int         `json:"expiration_month,omitempty"`
	ExpirationYear     int         `json:"expiration_year,omitempty"`
	DateDue            string      `json:"date_due,omitempty"`
	Cardholder         *Cardholder `json:"cardholder,omitempty"`

	StatusCode int `json:"-"`
}

// Cardholder is the holder data echoed in a token response
type Cardholder struct {
	Identification *Identification `json:"identification,omitempty"`
	Name           string          `json:"name,omitempty"`
}

// InternalTokenRequest tokenizes a network token through the transaction gateway
type InternalTokenRequest struct {
	Card            *InternalTokenCard `json:"card"`
	EstablishmentID string             `json:"establishment_id,omitempty"`
}

// InternalTokenCard is the card section of InternalTokenRequest
type InternalTokenCard struct {
	CardNumber     string `json:"card_number"`
	ExpirationDate string `json:"expiration_date"`
	SecurityCode   string `json:"security_code,omitempty"`
	CardHolder     string `json:"card_holder,omitempty"`
}

// GetInternalTokenResponse is the internal token created by the transaction gateway
type GetInternalTokenResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
	Token  string `json:"token,omitempty"`
	Bin    string `json:"bin,omitempty"`
}

// CryptogramRequest asks the transaction gateway for a payment cryptogram
type CryptogramRequest struct {
	SiteTransactionID string `json:"site_transaction_id"`
	Token             string `json:"token"`
	PaymentMethodID   int64  `json:"payment_method_id"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency,omitempty"`
	EstablishmentID   string `json:"establishment_id,omitempty"`
}

// GetCryptogramResponse carries the generated cryptogram
type GetCryptogramResponse struct {
	ID         string `json:"id,omitempty"`
	Cryptogram string `json:"cryptogram"`
	ECI        string `json:"eci,omitempty"`
}

// CardToken is one stored card of a site user
type CardToken struct {
	Token           string `json:"token"`
	PaymentMethodID int64  `json:"payment_method_id"`
	Bin             string `json:"bin,omitempty"`
	LastFourDigits  string `json:"last_four_digits,omitempty"`
	ExpirationMonth string `json:"expiration_month,omitempty"`
	ExpirationYear  string `json:"expiration_year,omitempty"`
	Expired         bool   `json:"expired"`
}

// GetAllCardTokensResponse lists the stored cards of a site user
type GetAllCardTokensResponse struct {
	Tokens []CardToken `json:"tokens"`
}
