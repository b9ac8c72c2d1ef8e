package signatures

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/internal/documents"
	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

func newFinalizeService(t *testing.T) (Service, *documents.LocalStorage, *MockDocumentSource) {
	t.Helper()
	storage, err := documents.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	mockDocs := new(MockDocumentSource)
	service := NewService(new(MockRepository), mockDocs, storage, zap.NewNop())
	return service, storage, mockDocs
}

// writeFixturePDF builds a single-page A4 PDF on disk.
func writeFixturePDF(t *testing.T, dir string) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 20, "Agreement body text")
	path := filepath.Join(dir, "agreement.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

func fixtureDocument(t *testing.T, dir string) *documents.Document {
	t.Helper()
	path := writeFixturePDF(t, dir)
	return &documents.Document{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		FileName:     filepath.Base(path),
		OriginalName: "agreement.pdf",
		Path:         path,
		PageWidth:    595.28,
		PageHeight:   841.89,
	}
}

func TestFinalize(t *testing.T) {
	service, storage, mockDocs := newFinalizeService(t)
	ctx := context.Background()

	doc := fixtureDocument(t, t.TempDir())
	mockDocs.On("Resolve", ctx, doc.ID).Return(doc, nil)

	before, err := os.ReadFile(doc.Path)
	require.NoError(t, err)

	signedPath, err := service.Finalize(ctx, FinalizeRequest{
		DocumentID:    doc.ID,
		SignatureText: "Jane Roe",
		X:             148.75,
		Y:             140.33,
		Page:          1,
		Font:          "times-italic",
		FontSize:      16,
	})
	require.NoError(t, err)

	assert.Equal(t, storage.Dir(), filepath.Dir(signedPath))
	assert.Contains(t, filepath.Base(signedPath), "agreement")
	assert.Contains(t, filepath.Base(signedPath), "-signed")

	signed, err := os.ReadFile(signedPath)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	// The source upload is never mutated.
	after, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// No temp leftovers in the uploads dir.
	entries, err := os.ReadDir(storage.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestFinalizeUnknownFontFallsBack(t *testing.T) {
	service, _, mockDocs := newFinalizeService(t)
	ctx := context.Background()

	doc := fixtureDocument(t, t.TempDir())
	mockDocs.On("Resolve", ctx, doc.ID).Return(doc, nil)

	signedPath, err := service.Finalize(ctx, FinalizeRequest{
		DocumentID:    doc.ID,
		SignatureText: "Jane Roe",
		X:             50,
		Y:             100,
		Page:          1,
		Font:          "comic-sans",
	})
	require.NoError(t, err)
	assert.FileExists(t, signedPath)
}

func TestFinalizeOutOfRangePageFallsBack(t *testing.T) {
	service, _, mockDocs := newFinalizeService(t)
	ctx := context.Background()

	doc := fixtureDocument(t, t.TempDir())
	mockDocs.On("Resolve", ctx, doc.ID).Return(doc, nil)

	signedPath, err := service.Finalize(ctx, FinalizeRequest{
		DocumentID:    doc.ID,
		SignatureText: "Jane Roe",
		X:             50,
		Y:             100,
		Page:          99,
	})
	require.NoError(t, err)
	assert.FileExists(t, signedPath)
}

func TestFinalizeUniqueArtifacts(t *testing.T) {
	service, _, mockDocs := newFinalizeService(t)
	ctx := context.Background()

	doc := fixtureDocument(t, t.TempDir())
	mockDocs.On("Resolve", ctx, doc.ID).Return(doc, nil)

	req := FinalizeRequest{
		DocumentID:    doc.ID,
		SignatureText: "Jane Roe",
		X:             50,
		Y:             100,
		Page:          1,
	}

	first, err := service.Finalize(ctx, req)
	require.NoError(t, err)
	second, err := service.Finalize(ctx, req)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)
}

func TestFinalizeCorruptSource(t *testing.T) {
	service, _, mockDocs := newFinalizeService(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	doc := &documents.Document{
		ID:           uuid.New(),
		OriginalName: "broken.pdf",
		Path:         path,
		PageWidth:    595,
		PageHeight:   842,
	}
	mockDocs.On("Resolve", ctx, doc.ID).Return(doc, nil)

	_, err := service.Finalize(ctx, FinalizeRequest{
		DocumentID:    doc.ID,
		SignatureText: "Jane Roe",
		X:             50,
		Y:             100,
		Page:          1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindMalformedInput, apperr.KindOf(err))
}

func TestFinalizeMissingDocument(t *testing.T) {
	service, _, mockDocs := newFinalizeService(t)
	ctx := context.Background()

	docID := uuid.New()
	mockDocs.On("Resolve", ctx, docID).Return(nil, apperr.New(apperr.KindNotFound, "document not found"))

	_, err := service.Finalize(ctx, FinalizeRequest{
		DocumentID:    docID,
		SignatureText: "Jane Roe",
		X:             50,
		Y:             100,
		Page:          1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFinalizeRequiresText(t *testing.T) {
	service, _, _ := newFinalizeService(t)

	_, err := service.Finalize(context.Background(), FinalizeRequest{
		DocumentID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestResolveFont(t *testing.T) {
	cases := map[string]string{
		"times-italic":      "Times-Italic",
		"TimesRoman":        "Times-Roman",
		"helvetica-bold":    "Helvetica-Bold",
		"helvetica-oblique": "Helvetica-Oblique",
		"comic-sans":        "Times-Roman",
		"":                  "Times-Roman",
	}
	for key, want := range cases {
		assert.Equal(t, want, ResolveFont(key), "key %q", key)
	}
}
