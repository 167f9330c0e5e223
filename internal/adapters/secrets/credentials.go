package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kevin07696/decidir-go/internal/adapters/ports"
)

// Credentials are the keys a Decidir site authenticates with
type Credentials struct {
	PrivateKey  string `json:"private_key"`
	PublicKey   string `json:"public_key"`
	ValidateKey string `json:"validate_key,omitempty"`
	Merchant    string `json:"merchant,omitempty"`
}

// LoadCredentials reads the credentials document stored at path.
// The secret must be a JSON object with at least private_key.
func LoadCredentials(ctx context.Context, store ports.SecretManagerAdapter, path string) (*Credentials, error) {
	secret, err := store.GetSecret(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return ParseCredentials(secret.Value)
}

// ParseCredentials decodes a credentials document
func ParseCredentials(value string) (*Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal([]byte(strings.TrimSpace(value)), &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if creds.PrivateKey == "" {
		return nil, fmt.Errorf("credentials are missing private_key")
	}
	return &creds, nil
}
