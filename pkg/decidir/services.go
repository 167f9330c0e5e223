package decidir

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kevin07696/decidir-go/internal/classify"
	"github.com/kevin07696/decidir-go/internal/transport"
	pkgerrors "github.com/kevin07696/decidir-go/pkg/errors"
	"github.com/kevin07696/decidir-go/pkg/models"
)

// HealthCheck probes the API
func (c *Connector) HealthCheck(ctx context.Context) (*models.HealthCheckResponse, error) {
	result, _, err := call[models.HealthCheckResponse](ctx, c, classify.HealthCheck, transport.Request{
		Method:  http.MethodGet,
		URL:     c.endpoints.payments + "healthcheck",
		Headers: c.headers,
	})
	return result, err
}

// GetAllCardTokens lists the cards stored for a site user
func (c *Connector) GetAllCardTokens(ctx context.Context, userID string) (*models.GetAllCardTokensResponse, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("user_id", "user id is required")
	}

	result, _, err := call[models.GetAllCardTokensResponse](ctx, c, classify.CardTokens, transport.Request{
		Method:  http.MethodGet,
		URL:     c.endpoints.payments + "usersite/" + url.PathEscape(userID) + "/cardtokens",
		Headers: c.headers,
	})
	return result, err
}

// DeleteCardToken removes a stored card. It reports true once the API
// confirms the deletion.
func (c *Connector) DeleteCardToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, pkgerrors.NewValidationError("token", "card token is required")
	}

	_, _, err := call[struct{}](ctx, c, classify.DeleteCardToken, transport.Request{
		Method:  http.MethodDelete,
		URL:     c.endpoints.payments + "cardtokens/" + url.PathEscape(token),
		Headers: c.headers,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// BatchClosure closes the current batch of the site
func (c *Connector) BatchClosure(ctx context.Context, req *models.BatchClosureRequest) (*models.BatchClosureResponse, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("closure", "batch closure request is required")
	}

	body, err := toJSON(req)
	if err != nil {
		return nil, err
	}

	result, status, err := call[models.BatchClosureResponse](ctx, c, classify.BatchClosure, transport.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.closure + "closures",
		Body:    body,
		Headers: c.headers,
	})
	if result != nil {
		result.StatusCode = status
	}
	return result, err
}
