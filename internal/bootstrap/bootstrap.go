package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/status-assistant/internal/config"
	geminiclient "github.com/GregMSThompson/status-assistant/internal/client/gemini"
	vertexclient "github.com/GregMSThompson/status-assistant/internal/client/vertex"
	"github.com/GregMSThompson/status-assistant/internal/dto"
	"github.com/GregMSThompson/status-assistant/pkg/logger"
)

type ModelClient interface {
	GenerateContent(ctx context.Context, req dto.ModelRequest) (dto.ModelResponse, error)
	Close() error
}

type Bootstrap struct {
	Log *slog.Logger
	// Model is nil when no credentials were configured.
	Model     ModelClient
	Firestore *firestore.Client
	Secrets   *secretmanager.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	if cfg.AuditEnabled {
		if cfg.ProjectID == "" {
			bs.Log.Warn("audit enabled without PROJECTID, audit records are disabled")
		} else {
			bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
			if err != nil {
				return bs, err
			}
		}
	}

	bs.Model, err = initModel(applicationCtx, bs, cfg)
	if err != nil {
		return bs, err
	}
	if bs.Model == nil {
		bs.Log.Warn("model credentials are not configured, chat requests will fail", "backend", cfg.ModelBackend)
	}

	return bs, nil
}

func initModel(ctx context.Context, bs *Bootstrap, cfg *config.Config) (ModelClient, error) {
	switch cfg.ModelBackend {
	case config.BackendVertex:
		if cfg.ProjectID == "" {
			return nil, nil
		}
		adapter, err := vertexclient.NewAdapter(ctx, bs.Log, cfg.ProjectID, cfg.Region, cfg.Model)
		if err != nil {
			return nil, err
		}
		return adapter, nil

	default:
		apiKey, err := resolveAPIKey(ctx, bs, cfg)
		if err != nil {
			return nil, err
		}
		if apiKey == "" {
			return nil, nil
		}
		adapter, err := geminiclient.NewAdapter(ctx, bs.Log, apiKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}
}

func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Model != nil {
		errList = append(errList, bs.Model.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	if bs.Secrets != nil {
		errList = append(errList, bs.Secrets.Close())
	}
	return errors.Join(errList...)
}
