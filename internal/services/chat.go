package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GregMSThompson/status-assistant/internal/dto"
	"github.com/GregMSThompson/status-assistant/internal/errs"
	"github.com/GregMSThompson/status-assistant/internal/mcpsession"
	"github.com/GregMSThompson/status-assistant/internal/models"
	"github.com/GregMSThompson/status-assistant/internal/toolschema"
	"github.com/GregMSThompson/status-assistant/pkg/logger"
)

const (
	noResultPlaceholder = "(no result)"
	noAnswerPlaceholder = "(no answer)"
)

type modelClient interface {
	GenerateContent(ctx context.Context, req dto.ModelRequest) (dto.ModelResponse, error)
}

type sessionOpener interface {
	Open(ctx context.Context) (mcpsession.Session, error)
}

type auditStore interface {
	SaveAudit(ctx context.Context, audit models.ChatAudit) error
}

type ChatSettings struct {
	Model   string
	Timeout time.Duration
	// Audit is optional; nil disables audit records.
	Audit    auditStore
	AuditTTL time.Duration
}

type chatService struct {
	model    modelClient
	sessions sessionOpener
	settings ChatSettings
	clockNow func() time.Time
}

func NewChatService(model modelClient, sessions sessionOpener, settings ChatSettings) *chatService {
	return &chatService{
		model:    model,
		sessions: sessions,
		settings: settings,
		clockNow: time.Now,
	}
}

// Configured reports whether the upstream model credentials were provided.
func (s *chatService) Configured() error {
	if s.model == nil {
		return errs.NewConfigurationError("model credentials are not configured")
	}
	return nil
}

// chatTrace collects what happened during one request for the audit record.
type chatTrace struct {
	sessionID  string
	toolName   string
	toolArgs   map[string]any
	modelCalls int
}

func (s *chatService) Chat(ctx context.Context, identity, message string) (dto.ChatResponse, error) {
	if err := s.Configured(); err != nil {
		return dto.ChatResponse{}, err
	}

	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	start := s.clockNow()
	trace := &chatTrace{}
	reply, err := s.converse(ctx, message, trace)
	s.saveAudit(ctx, identity, trace, start, err)

	if err != nil {
		logger.FromContext(ctx).Error("chat orchestration failed", "error", err)
		return dto.ChatResponse{}, errs.NewOrchestrationError(err)
	}
	return dto.ChatResponse{Reply: reply}, nil
}

func (s *chatService) converse(ctx context.Context, message string, trace *chatTrace) (string, error) {
	sess, err := s.sessions.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("open tool session: %w", err)
	}
	defer closeSession(ctx, sess)

	trace.sessionID = sess.ID()
	log, ctx := logger.With(ctx, "session_id", sess.ID())
	if logger.IsDebugEnabled(ctx) {
		log.Debug("chat message received", "message", message)
	}

	tools, err := sess.ListTools(ctx)
	if err != nil {
		return "", err
	}
	log.Info("tool catalog loaded", "tools", toolNames(tools))

	history := []dto.ModelContent{dto.UserText(message)}
	first, err := s.generate(ctx, trace, dto.ModelRequest{
		Model:    s.settings.Model,
		Contents: history,
		Tools:    toolschema.TranslateAll(tools),
	})
	if err != nil {
		return "", err
	}

	calls := first.FunctionCalls()
	if len(calls) == 0 {
		log.Info("model answered without a tool")
		return ExtractText(first), nil
	}
	if len(calls) > 1 {
		log.Warn("received multiple tool calls, only processing the first", "count", len(calls))
	}

	call := calls[0]
	if call.Name == "" {
		return "", errors.New("model requested a function call without a name")
	}
	trace.toolName = call.Name
	trace.toolArgs = call.Args
	log.Info("executing tool", "tool", call.Name)

	result, err := sess.CallTool(ctx, dto.ToolInvocation{Name: call.Name, Arguments: call.Args})
	if err != nil {
		return "", err
	}
	if result.IsError {
		log.Warn("tool reported an error result", "tool", call.Name)
	}
	toolText := result.Text()
	if toolText == "" {
		toolText = noResultPlaceholder
	}
	if logger.IsDebugEnabled(ctx) {
		log.Debug("tool result", "tool", call.Name, "result", toolText)
	}

	history = append(history,
		dto.ModelContent{Role: dto.RoleModel, Parts: dto.WithoutReasoning(first.Parts)},
		dto.ModelContent{Role: dto.RoleUser, Parts: []dto.Part{
			dto.FunctionResponsePart{
				Name:     call.Name,
				Response: map[string]any{"result": toolText},
			},
		}},
	)

	// no tools on the second round, so the model has to answer
	final, err := s.generate(ctx, trace, dto.ModelRequest{
		Model:    s.settings.Model,
		Contents: history,
	})
	if err != nil {
		return "", err
	}

	log.Info("chat completed", "tool", call.Name)
	return ExtractText(final), nil
}

func (s *chatService) generate(ctx context.Context, trace *chatTrace, req dto.ModelRequest) (dto.ModelResponse, error) {
	trace.modelCalls++
	resp, err := s.model.GenerateContent(ctx, req)
	if err != nil {
		return dto.ModelResponse{}, fmt.Errorf("model round %d: %w", trace.modelCalls, err)
	}
	return resp, nil
}

// closeSession never fails the request; teardown errors are only logged.
func closeSession(ctx context.Context, sess mcpsession.Session) {
	if err := sess.Close(); err != nil {
		logger.FromContext(ctx).Warn("tool session close failed", "session_id", sess.ID(), "error", err)
	}
}

func (s *chatService) saveAudit(ctx context.Context, identity string, trace *chatTrace, start time.Time, chatErr error) {
	if s.settings.Audit == nil {
		return
	}

	now := s.clockNow()
	audit := models.ChatAudit{
		Identity:   identity,
		SessionID:  trace.sessionID,
		ToolName:   trace.toolName,
		ToolArgs:   trace.toolArgs,
		ModelCalls: trace.modelCalls,
		Outcome:    models.OutcomeReply,
		DurationMS: now.Sub(start).Milliseconds(),
		CreatedAt:  now,
	}
	if chatErr != nil {
		audit.Outcome = models.OutcomeError
		audit.Error = chatErr.Error()
	}
	if s.settings.AuditTTL > 0 {
		audit.ExpiresAt = now.Add(s.settings.AuditTTL)
	}

	// the request deadline may already have passed
	if err := s.settings.Audit.SaveAudit(context.WithoutCancel(ctx), audit); err != nil {
		logger.FromContext(ctx).Warn("failed to save chat audit", "error", err)
	}
}

func toolNames(tools []dto.ToolDescriptor) []string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names
}
