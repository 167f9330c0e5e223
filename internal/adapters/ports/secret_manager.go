package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret document (JSON credentials or a plain key)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter defines the port for reading Decidir credentials from a
// secret management service.
// Supported backends: AWS Secrets Manager, HashiCorp Vault, local filesystem.
// Implementations cache secrets with a TTL.
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - AWS: "decidir/{site_id}" or a full ARN
	//   - Vault: "decidir/{site_id}" under the configured KV mount
	//   - Local: a file path relative to the base directory
	// Returns error if:
	//   - Secret does not exist
	//   - Insufficient permissions
	//   - Network communication fails
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
