package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder is the write side of the audit log, a pure side-effect sink.
type Recorder interface {
	Record(ctx context.Context, documentID uuid.UUID, userID *uuid.UUID, action, ip string)
}

// Service records and lists audit entries. Record failures are logged and
// never propagated; auditing must not fail the action it describes.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Record(ctx context.Context, documentID uuid.UUID, userID *uuid.UUID, action, ip string) {
	entry := &Entry{
		ID:         uuid.New(),
		DocumentID: documentID,
		UserID:     userID,
		Action:     action,
		IP:         ip,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("document_id", documentID.String()),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *Service) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Entry, error) {
	return s.repo.ListByDocument(ctx, documentID)
}
