package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/GregMSThompson/status-assistant/internal/dto"
	"github.com/GregMSThompson/status-assistant/internal/errs"
	"github.com/GregMSThompson/status-assistant/internal/middleware"
	"github.com/GregMSThompson/status-assistant/internal/response"
	"github.com/GregMSThompson/status-assistant/pkg/logger"
)

const (
	invalidBodyMessage     = `request body is invalid; send { "message": string }`
	missingMessageMessage  = "message field is required"
	maxChatRequestBodySize = 1 << 20
)

type ChatService interface {
	Configured() error
	Chat(ctx context.Context, identity, message string) (dto.ChatResponse, error)
}

type chatHandlers struct {
	ResponseHandler response.ResponseHandler
	ChatSvc         ChatService
}

func NewChatHandlers(deps *Deps) *chatHandlers {
	return &chatHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChatSvc:         deps.ChatSvc,
	}
}

func (h *chatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	if err := h.ChatSvc.Configured(); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var body dto.ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatRequestBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "message" {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError(missingMessageMessage))
			return
		}
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(invalidBodyMessage))
		return
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(invalidBodyMessage))
		return
	}
	if body.Message == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(missingMessageMessage))
		return
	}

	log := logger.FromContext(r.Context())
	log.Debug("chat request received", "message", body.Message)

	identity := middleware.Identity(r.Context())
	resp, err := h.ChatSvc.Chat(r.Context(), identity, body.Message)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
