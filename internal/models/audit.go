package models

import "time"

// ChatAudit records how a chat request was served. It never holds the
// message or the reply.
type ChatAudit struct {
	Identity   string         `firestore:"identity,omitempty" json:"identity,omitempty"`
	SessionID  string         `firestore:"sessionId,omitempty" json:"sessionId,omitempty"`
	ToolName   string         `firestore:"toolName,omitempty" json:"toolName,omitempty"`
	ToolArgs   map[string]any `firestore:"toolArgs,omitempty" json:"toolArgs,omitempty"`
	ModelCalls int            `firestore:"modelCalls" json:"modelCalls"`
	Outcome    string         `firestore:"outcome" json:"outcome"`
	Error      string         `firestore:"error,omitempty" json:"error,omitempty"`
	DurationMS int64          `firestore:"durationMs" json:"durationMs"`
	CreatedAt  time.Time      `firestore:"createdAt" json:"createdAt"`
	ExpiresAt  time.Time      `firestore:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

const (
	OutcomeReply = "reply"
	OutcomeError = "error"
)
