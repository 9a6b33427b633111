package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/status-assistant/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ChatSvc         ChatService
}
