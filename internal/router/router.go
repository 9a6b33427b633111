package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/status-assistant/internal/errs"
	"github.com/GregMSThompson/status-assistant/internal/handlers"
)

// Options carries the middleware built at bootstrap. Limiter may be nil.
type Options struct {
	Logger  func(http.Handler) http.Handler
	Guard   func(http.Handler) http.Handler
	Limiter func(http.Handler) http.Handler
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	if opts.Logger != nil {
		r.Use(opts.Logger)
	}
	r.Use(chimiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		deps.ResponseHandler.HandleError(w, req, errs.NewNotFoundError("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		deps.ResponseHandler.HandleError(w, req, errs.NewMethodNotAllowedError("method not allowed"))
	})

	hh := handlers.NewHealthHandlers(deps)
	r.Get("/healthz", hh.Health)

	ch := handlers.NewChatHandlers(deps)
	r.Route("/api", func(r chi.Router) {
		if opts.Guard != nil {
			r.Use(opts.Guard)
		}
		if opts.Limiter != nil {
			r.Use(opts.Limiter)
		}
		r.Post("/chat", ch.Chat)
	})

	return r
}
