package signatures

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/internal/documents"
	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
	"penscribe/sign-portal/sign-portal-backend/pkg/geometry"
)

// DocumentSource resolves document records for placement validation and
// finalization.
type DocumentSource interface {
	Resolve(ctx context.Context, id uuid.UUID) (*documents.Document, error)
}

type Service interface {
	Place(ctx context.Context, req PlaceRequest) (*Signature, error)
	CreatePublic(ctx context.Context, req PublicSignRequest) (*Signature, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error)
	Get(ctx context.Context, id uuid.UUID) (*Signature, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason string) (*Signature, error)
	Finalize(ctx context.Context, req FinalizeRequest) (string, error)
}

// PlaceRequest creates a pending signature via the authenticated flow.
// When PreviewSize is set, X and Y are preview-pixel coordinates and are
// converted to PDF-point space against the document's page dimensions;
// otherwise they are taken as PDF points already.
type PlaceRequest struct {
	DocumentID  uuid.UUID
	UserID      uuid.UUID
	X           float64
	Y           float64
	Page        int
	Value       string
	Font        string
	PreviewSize *geometry.Size
}

// PublicSignRequest creates a signature directly in signed state on behalf
// of an anonymous capability-link holder.
type PublicSignRequest struct {
	DocumentID  uuid.UUID
	X           float64
	Y           float64
	Page        int
	SignerName  string
	PreviewSize *geometry.Size
}

type signatureService struct {
	repo    Repository
	docs    DocumentSource
	storage *documents.LocalStorage
	logger  *zap.Logger
}

func NewService(repo Repository, docs DocumentSource, storage *documents.LocalStorage, logger *zap.Logger) Service {
	return &signatureService{
		repo:    repo,
		docs:    docs,
		storage: storage,
		logger:  logger,
	}
}

func (s *signatureService) Place(ctx context.Context, req PlaceRequest) (*Signature, error) {
	if req.Page < 1 {
		return nil, apperr.New(apperr.KindValidation, "page must be 1 or greater")
	}

	doc, err := s.docs.Resolve(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	point, err := s.resolvePoint(req.X, req.Y, req.PreviewSize, doc)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sig := &Signature{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		UserID:     &req.UserID,
		X:          point.X,
		Y:          point.Y,
		Page:       req.Page,
		Font:       req.Font,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Value != "" {
		sig.Value = &req.Value
	}

	if err := s.repo.CreateSignature(ctx, sig); err != nil {
		return nil, err
	}

	s.logger.Info("signature placed",
		zap.String("signature_id", sig.ID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.Float64("x", sig.X),
		zap.Float64("y", sig.Y),
		zap.Int("page", sig.Page))
	return sig, nil
}

// CreatePublic skips the pending state: public signers are not subject to
// the owner's accept/reject review.
func (s *signatureService) CreatePublic(ctx context.Context, req PublicSignRequest) (*Signature, error) {
	if req.Page < 1 {
		return nil, apperr.New(apperr.KindValidation, "page must be 1 or greater")
	}
	if req.SignerName == "" {
		return nil, apperr.New(apperr.KindValidation, "signer name is required")
	}

	doc, err := s.docs.Resolve(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	point, err := s.resolvePoint(req.X, req.Y, req.PreviewSize, doc)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sig := &Signature{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		UserID:     nil,
		X:          point.X,
		Y:          point.Y,
		Page:       req.Page,
		Status:     StatusSigned,
		SignedAt:   &now,
		SignerName: &req.SignerName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateSignature(ctx, sig); err != nil {
		return nil, err
	}

	s.logger.Info("public signature recorded",
		zap.String("signature_id", sig.ID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("signer_name", req.SignerName))
	return sig, nil
}

func (s *signatureService) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error) {
	return s.repo.ListByDocument(ctx, documentID)
}

func (s *signatureService) Get(ctx context.Context, id uuid.UUID) (*Signature, error) {
	sig, err := s.repo.GetSignatureByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sig == nil {
		return nil, apperr.New(apperr.KindNotFound, "signature not found")
	}
	return sig, nil
}

func (s *signatureService) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason string) (*Signature, error) {
	if status != StatusSigned && status != StatusRejected {
		return nil, apperr.Newf(apperr.KindValidation, "invalid status %q", status)
	}

	sig, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(sig.Status, status) {
		return nil, apperr.Newf(apperr.KindConflict,
			"signature is already %s and cannot change", sig.Status)
	}

	now := time.Now()
	sig.Status = status
	sig.UpdatedAt = now
	switch status {
	case StatusSigned:
		sig.SignedAt = &now
	case StatusRejected:
		if reason != "" {
			sig.Reason = &reason
		}
	}

	if err := s.repo.UpdateStatus(ctx, sig); err != nil {
		return nil, err
	}

	s.logger.Info("signature status updated",
		zap.String("signature_id", sig.ID.String()),
		zap.String("status", string(status)))
	return sig, nil
}

func (s *signatureService) resolvePoint(x, y float64, preview *geometry.Size, doc *documents.Document) (geometry.Point, error) {
	p := geometry.Point{X: x, Y: y}
	if preview == nil {
		return p, nil
	}
	return geometry.ToPDFSpace(p, *preview, geometry.Size{Width: doc.PageWidth, Height: doc.PageHeight})
}
