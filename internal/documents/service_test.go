package documents

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateDocument(ctx context.Context, doc *Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockRepository) GetDocumentByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Document), args.Error(1)
}

func (m *MockRepository) ListDocumentsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Document, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]Document), args.Error(1)
}

func (m *MockRepository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func pdfFixture(t *testing.T) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 20, "Fixture page")
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func newTestService(t *testing.T, repo Repository) (Service, *LocalStorage) {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(repo, storage, zap.NewNop()), storage
}

func TestUploadDocument(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newTestService(t, mockRepo)

	ctx := context.Background()
	ownerID := uuid.New()

	mockRepo.On("CreateDocument", ctx, mock.AnythingOfType("*documents.Document")).Return(nil)

	doc, err := service.UploadDocument(ctx, UploadRequest{
		OwnerID:      ownerID,
		OriginalName: "contract.pdf",
		Size:         1024,
		Content:      bytes.NewReader(pdfFixture(t)),
	})

	require.NoError(t, err)
	assert.Equal(t, ownerID, doc.OwnerID)
	assert.Equal(t, "contract.pdf", doc.OriginalName)
	assert.Contains(t, doc.FileName, "contract.pdf")
	assert.FileExists(t, doc.Path)

	// Page size probed from the actual file (A4 in points).
	assert.InDelta(t, 595.28, doc.PageWidth, 0.5)
	assert.InDelta(t, 841.89, doc.PageHeight, 0.5)

	mockRepo.AssertExpectations(t)
}

func TestUploadDocumentRejectsInvalidPDF(t *testing.T) {
	mockRepo := new(MockRepository)
	service, storage := newTestService(t, mockRepo)

	ctx := context.Background()
	_, err := service.UploadDocument(ctx, UploadRequest{
		OwnerID:      uuid.New(),
		OriginalName: "notes.pdf",
		Content:      bytes.NewReader([]byte("plain text, not a pdf")),
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindMalformedInput, apperr.KindOf(err))
	mockRepo.AssertNotCalled(t, "CreateDocument", mock.Anything, mock.Anything)

	// The rejected file is cleaned up.
	entries, err := os.ReadDir(storage.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetDocumentOwnership(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newTestService(t, mockRepo)

	ctx := context.Background()
	ownerID := uuid.New()
	doc := &Document{ID: uuid.New(), OwnerID: ownerID}

	mockRepo.On("GetDocumentByID", ctx, doc.ID).Return(doc, nil)

	got, err := service.GetDocument(ctx, doc.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	_, err = service.GetDocument(ctx, doc.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestResolveNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service, _ := newTestService(t, mockRepo)

	ctx := context.Background()
	id := uuid.New()
	mockRepo.On("GetDocumentByID", ctx, id).Return(nil, nil)

	_, err := service.Resolve(ctx, id)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteDocumentRemovesFile(t *testing.T) {
	mockRepo := new(MockRepository)
	service, storage := newTestService(t, mockRepo)

	ctx := context.Background()
	ownerID := uuid.New()

	path, err := storage.Save("doomed.pdf", bytes.NewReader(pdfFixture(t)))
	require.NoError(t, err)

	doc := &Document{ID: uuid.New(), OwnerID: ownerID, Path: path}
	mockRepo.On("GetDocumentByID", ctx, doc.ID).Return(doc, nil)
	mockRepo.On("DeleteDocument", ctx, doc.ID).Return(nil)

	require.NoError(t, service.DeleteDocument(ctx, doc.ID, ownerID))
	assert.NoFileExists(t, path)
	mockRepo.AssertExpectations(t)
}

func TestProbePageSizeFallback(t *testing.T) {
	w, h := ProbePageSize("/nonexistent/file.pdf")
	assert.Equal(t, DefaultPageWidth, w)
	assert.Equal(t, DefaultPageHeight, h)
}
