package signatures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/internal/documents"
	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
	"penscribe/sign-portal/sign-portal-backend/pkg/geometry"
)

// signatureColor is the fixed accent color signatures are drawn in.
const signatureColor = "#4d3399"

// FinalizeRequest burns text into a document's PDF. X and Y are PDF points
// with a top-left origin, as stored on Signature records.
type FinalizeRequest struct {
	DocumentID    uuid.UUID
	SignatureText string
	X             float64
	Y             float64
	Page          int
	Font          string
	FontSize      float64
}

// Finalize draws the signature text into the document's PDF and writes the
// result as a new artifact, returning its storage path. The source upload is
// never modified and no signature record is touched; status transitions are
// a separate operation the caller composes.
func (s *signatureService) Finalize(ctx context.Context, req FinalizeRequest) (string, error) {
	if req.SignatureText == "" {
		return "", apperr.New(apperr.KindValidation, "signature text is required")
	}
	if req.FontSize <= 0 {
		req.FontSize = DefaultFontSize
	}

	doc, err := s.docs.Resolve(ctx, req.DocumentID)
	if err != nil {
		return "", err
	}

	// Re-validate even though uploads are checked at ingest: the file can be
	// deleted or corrupted between upload and finalize.
	if err := documents.ValidatePDF(doc.Path); err != nil {
		return "", err
	}

	fontName := ResolveFont(req.Font)

	page := req.Page
	if count := documents.PageCount(doc.Path); page < 1 || page > count {
		page = 1
	}

	pageHeight := doc.PageHeight
	if dims, err := pdfapi.PageDimsFile(doc.Path); err == nil && page <= len(dims) {
		pageHeight = dims[page-1].Height
	}
	drawY := geometry.DrawY(pageHeight, req.Y, req.FontSize)

	desc := fmt.Sprintf("fontname:%s, points:%d, scale:1 abs, pos:bl, rot:0, op:1, fillcolor:%s",
		fontName, int(req.FontSize), signatureColor)
	wm, err := pdfcpu.ParseTextWatermarkDetails(req.SignatureText, desc, true, types.POINTS)
	if err != nil {
		return "", fmt.Errorf("failed to build signature stamp: %w", err)
	}
	wm.Dx = req.X
	wm.Dy = drawY

	// Stamp into a temp file and promote atomically, so a failed write never
	// leaves a partial artifact in the uploads dir.
	tmp := s.storage.TempPath()
	conf := model.NewDefaultConfiguration()
	pages := []string{strconv.Itoa(page)}
	if err := pdfapi.AddWatermarksFile(doc.Path, tmp, pages, wm, conf); err != nil {
		os.Remove(tmp)
		return "", apperr.Wrap(apperr.KindStorage, "failed to write signed artifact", err)
	}

	signedPath, err := s.storage.Promote(tmp, signedArtifactName(doc.OriginalName))
	if err != nil {
		return "", err
	}

	s.logger.Info("document finalized",
		zap.String("document_id", doc.ID.String()),
		zap.String("signed_path", signedPath),
		zap.String("font", fontName),
		zap.Int("page", page),
		zap.Float64("draw_y", drawY))
	return signedPath, nil
}

// signedArtifactName keeps the artifact traceable to its source upload while
// the random suffix guarantees uniqueness across same-millisecond finalizes.
func signedArtifactName(originalName string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), ".pdf")
	return fmt.Sprintf("%d-%s-signed-%s.pdf", time.Now().UnixMilli(), base, uuid.NewString()[:8])
}
