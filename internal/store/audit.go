package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/status-assistant/internal/models"
)

const auditCollection = "chat_audit"

type auditStore struct {
	client *firestore.Client
}

func NewAuditStore(client *firestore.Client) *auditStore {
	return &auditStore{client: client}
}

func (s *auditStore) SaveAudit(ctx context.Context, audit models.ChatAudit) error {
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = time.Now()
	}

	_, _, err := s.client.Collection(auditCollection).Add(ctx, audit)
	if err != nil {
		return fmt.Errorf("save chat audit: %w", err)
	}
	return nil
}
