package statuspage

import (
	"context"
	"log/slog"

	"status-page/internal/storage"
)

// KeyStore answers whether an API key is one of the stored keys.
type KeyStore struct {
	provider storage.Provider
	logger   *slog.Logger
}

func NewKeyStore(provider storage.Provider) *KeyStore {
	return &KeyStore{
		provider: provider,
		logger:   slog.With("component", "keystore"),
	}
}

// IsValid reports whether key exactly matches a stored API key. Lookup
// failures are logged and reported as invalid.
func (k *KeyStore) IsValid(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	ok, err := k.provider.APIKeyExists(ctx, key)
	if err != nil {
		k.logger.Error("API key lookup failed", "error", err)
		return false
	}
	return ok
}
