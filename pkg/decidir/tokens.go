package decidir

import (
	"context"
	"net/http"

	"github.com/kevin07696/decidir-go/internal/classify"
	"github.com/kevin07696/decidir-go/internal/transport"
	pkgerrors "github.com/kevin07696/decidir-go/pkg/errors"
	"github.com/kevin07696/decidir-go/pkg/models"
)

// GetToken tokenizes card data with the public key
func (c *Connector) GetToken(ctx context.Context, card *models.TokenRequest) (*models.GetTokenResponse, error) {
	if card == nil {
		return nil, pkgerrors.NewValidationError("card", "card data is required")
	}
	return c.createToken(ctx, card)
}

// GetTokenByCardTokenBsa tokenizes a card stored by the card vault
func (c *Connector) GetTokenByCardTokenBsa(ctx context.Context, card *models.CardTokenBsa) (*models.GetTokenResponse, error) {
	if card == nil {
		return nil, pkgerrors.NewValidationError("card", "card token data is required")
	}
	return c.createToken(ctx, card)
}

func (c *Connector) createToken(ctx context.Context, card any) (*models.GetTokenResponse, error) {
	body, err := toJSON(card)
	if err != nil {
		return nil, err
	}

	result, status, err := call[models.GetTokenResponse](ctx, c, classify.Token, transport.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.payments + "tokens",
		Body:    body,
		Headers: c.headers.With(headerAPIKey, c.publicKey),
	})
	if result != nil {
		result.StatusCode = status
	}
	return result, err
}

// GetInternalToken creates a token through the transaction gateway
func (c *Connector) GetInternalToken(ctx context.Context, req *models.InternalTokenRequest) (*models.GetInternalTokenResponse, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("token", "internal token request is required")
	}

	body, err := toJSON(req)
	if err != nil {
		return nil, err
	}

	result, _, err := callDecoding[models.GetInternalTokenResponse](ctx, c, classify.InternalToken, transport.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.internalToken + "tokens",
		Body:    body,
		Headers: c.headers.With(headerAPIKey, c.publicKey),
	}, decodeGatewayError)
	return result, err
}

// Cryptogram requests a payment cryptogram from the transaction gateway
func (c *Connector) Cryptogram(ctx context.Context, req *models.CryptogramRequest) (*models.GetCryptogramResponse, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("cryptogram", "cryptogram request is required")
	}

	body, err := toJSON(req)
	if err != nil {
		return nil, err
	}

	result, _, err := callDecoding[models.GetCryptogramResponse](ctx, c, classify.Cryptogram, transport.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.internalToken + "payments",
		Body:    body,
		Headers: c.headers,
	}, decodeGatewayError)
	return result, err
}

// Validate validates a payment form. It authenticates with the validate key
// and merchant given through WithValidateCredentials.
func (c *Connector) Validate(ctx context.Context, data *models.ValidateData) (*models.ValidateResponse, error) {
	if data == nil {
		return nil, pkgerrors.NewValidationError("validate", "validate data is required")
	}
	if c.validateKey == "" {
		return nil, pkgerrors.NewValidationError("validate_api_key", "validate API key is not configured")
	}

	body, err := toJSON(data)
	if err != nil {
		return nil, err
	}

	result, status, err := call[models.ValidateResponse](ctx, c, classify.Validate, transport.Request{
		Method: http.MethodPost,
		URL:    c.endpoints.validate + "validate",
		Body:   body,
		Headers: c.headers.
			With(headerAPIKey, c.validateKey).
			With(headerConsumerUsername, c.merchant),
	})
	if result != nil {
		result.StatusCode = status
	}
	return result, err
}
