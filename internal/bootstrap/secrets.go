package bootstrap

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/status-assistant/internal/config"
	"github.com/GregMSThompson/status-assistant/internal/store"
)

func InitSecretManager(ctx context.Context) (*secretmanager.Client, error) {
	return secretmanager.NewClient(ctx)
}

// resolveAPIKey prefers GEMINI_API_KEY and only reaches Secret Manager when a
// secret name was configured instead.
func resolveAPIKey(ctx context.Context, bs *Bootstrap, cfg *config.Config) (string, error) {
	if cfg.GeminiAPIKey != "" || cfg.GeminiAPIKeyName == "" {
		return cfg.GeminiAPIKey, nil
	}

	var err error
	bs.Secrets, err = InitSecretManager(ctx)
	if err != nil {
		return "", fmt.Errorf("secret manager client: %w", err)
	}

	key, err := store.NewSecretsStore(bs.Secrets, cfg.ProjectID).GetSecret(ctx, cfg.GeminiAPIKeyName)
	if err != nil {
		return "", fmt.Errorf("resolve gemini api key: %w", err)
	}
	bs.Log.Info("gemini api key resolved from secret manager")
	return key, nil
}
