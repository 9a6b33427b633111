package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GregMSThompson/status-assistant/internal/bootstrap"
	"github.com/GregMSThompson/status-assistant/internal/config"
	"github.com/GregMSThompson/status-assistant/internal/handlers"
	"github.com/GregMSThompson/status-assistant/internal/mcpsession"
	"github.com/GregMSThompson/status-assistant/internal/middleware"
	"github.com/GregMSThompson/status-assistant/internal/response"
	"github.com/GregMSThompson/status-assistant/internal/router"
	"github.com/GregMSThompson/status-assistant/internal/services"
	"github.com/GregMSThompson/status-assistant/internal/statustool"
	"github.com/GregMSThompson/status-assistant/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// a missing .env is fine outside local development
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// tool sessions
	var sessions mcpsession.Opener
	if cfg.MCPServerURL != "" {
		sessions = mcpsession.NewRemote(cfg.MCPServerURL, nil)
		bs.Log.Info("using remote tool server", "endpoint", cfg.MCPServerURL)
	} else {
		sessions = mcpsession.NewInProcess(func() *mcp.Server {
			return statustool.NewServer(statustool.FixedMetrics{})
		})
	}

	// services
	settings := services.ChatSettings{
		Model:    cfg.Model,
		Timeout:  cfg.ChatTimeout,
		AuditTTL: cfg.AuditTTL,
	}
	if bs.Firestore != nil {
		settings.Audit = store.NewAuditStore(bs.Firestore)
	}
	// bs.Model is a nil interface when credentials are missing
	chatSvc := services.NewChatService(bs.Model, sessions, settings)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.ChatSvc = chatSvc

	opts := router.Options{
		Logger: middleware.NewLoggerMiddleware(bs.Log).LoggerMiddleware,
		Guard:  middleware.NewAccessGuard(cfg.AllowedDomain, rh).Guard,
	}
	if cfg.RateLimitRPS > 0 {
		opts.Limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, rh).Limit
	}

	// router
	r := router.NewRouter(deps, opts)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	bs.Log.Info("server starting", "port", cfg.Port, "backend", cfg.ModelBackend, "model", cfg.Model)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	exitOnError("server start failed", err, bs.Log)
}
