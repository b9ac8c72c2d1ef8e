package documents

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

type Service interface {
	UploadDocument(ctx context.Context, req UploadRequest) (*Document, error)
	GetDocument(ctx context.Context, id, requesterID uuid.UUID) (*Document, error)
	ListDocuments(ctx context.Context, ownerID uuid.UUID) ([]Document, error)
	DownloadDocument(ctx context.Context, id, requesterID uuid.UUID) (io.ReadCloser, error)
	DeleteDocument(ctx context.Context, id, requesterID uuid.UUID) error

	// Resolve fetches a document without an ownership check, for callers
	// that carry their own authorization (finalization, capability links).
	Resolve(ctx context.Context, id uuid.UUID) (*Document, error)
}

type UploadRequest struct {
	OwnerID      uuid.UUID
	OriginalName string
	Size         int64
	Content      io.Reader
}

type documentService struct {
	repo    Repository
	storage *LocalStorage
	logger  *zap.Logger
}

func NewService(repo Repository, storage *LocalStorage, logger *zap.Logger) Service {
	return &documentService{
		repo:    repo,
		storage: storage,
		logger:  logger,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, req UploadRequest) (*Document, error) {
	name := s.storage.GenerateUploadName(req.OriginalName)
	path, err := s.storage.Save(name, req.Content)
	if err != nil {
		return nil, err
	}

	// Malformed uploads are deleted immediately so the uploads dir only ever
	// holds parseable PDFs.
	if err := ValidatePDF(path); err != nil {
		_ = s.storage.Remove(path)
		return nil, err
	}

	width, height := ProbePageSize(path)

	doc := &Document{
		ID:           uuid.New(),
		OwnerID:      req.OwnerID,
		FileName:     name,
		OriginalName: req.OriginalName,
		Path:         path,
		Size:         req.Size,
		PageWidth:    width,
		PageHeight:   height,
		UploadedAt:   time.Now(),
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		_ = s.storage.Remove(path)
		return nil, err
	}

	s.logger.Info("document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("file", name),
		zap.Float64("page_width", width),
		zap.Float64("page_height", height))
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, id, requesterID uuid.UUID) (*Document, error) {
	doc, err := s.ownedDocument(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, ownerID uuid.UUID) ([]Document, error) {
	return s.repo.ListDocumentsByOwner(ctx, ownerID)
}

func (s *documentService) DownloadDocument(ctx context.Context, id, requesterID uuid.UUID) (io.ReadCloser, error) {
	doc, err := s.ownedDocument(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	return s.storage.Open(doc.Path)
}

func (s *documentService) DeleteDocument(ctx context.Context, id, requesterID uuid.UUID) error {
	doc, err := s.ownedDocument(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(doc.Path); err != nil {
		return err
	}
	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document deleted", zap.String("document_id", id.String()))
	return nil
}

func (s *documentService) Resolve(ctx context.Context, id uuid.UUID) (*Document, error) {
	doc, err := s.repo.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperr.New(apperr.KindNotFound, "document not found")
	}
	return doc, nil
}

func (s *documentService) ownedDocument(ctx context.Context, id, requesterID uuid.UUID) (*Document, error) {
	doc, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != requesterID {
		return nil, apperr.New(apperr.KindUnauthorized, "not the document owner")
	}
	return doc, nil
}
