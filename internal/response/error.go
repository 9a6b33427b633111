package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/status-assistant/internal/errs"
	"github.com/GregMSThompson/status-assistant/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.MethodNotAllowedError:
		log.Warn("method not allowed", "error", e.Message)
		h.WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", e.Message)

	case *errs.PrincipalDecodeError:
		log.Warn("identity header could not be decoded")
		h.WriteError(w, r, http.StatusForbidden, "invalid_principal", e.Message)

	case *errs.DomainDeniedError:
		log.Warn("identity outside allowed domain")
		h.WriteError(w, r, http.StatusForbidden, "forbidden", e.Message)

	case *errs.RateLimitedError:
		log.Warn("rate limit exceeded")
		h.WriteError(w, r, http.StatusTooManyRequests, "rate_limited", e.Message)

	case *errs.ConfigurationError:
		log.Error("server misconfigured", "error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "configuration_error", e.Message)

	case *errs.OrchestrationError:
		log.Error("orchestration error", "error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", e.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
