package documents

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/internal/audit"
	"penscribe/sign-portal/sign-portal-backend/internal/auth"
	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

type Handler struct {
	service Service
	audit   audit.Recorder
	logger  *zap.Logger
}

func NewHandler(service Service, auditor audit.Recorder, logger *zap.Logger) *Handler {
	return &Handler{service: service, audit: auditor, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/docs")
	{
		docs.POST("/upload", h.Upload)
		docs.GET("", h.List)
		docs.GET("/:id", h.Get)
		docs.GET("/:id/download", h.Download)
		docs.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if !strings.EqualFold(file.Header.Get("Content-Type"), "application/pdf") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are allowed"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	userID, _ := auth.UserID(c)
	doc, err := h.service.UploadDocument(c.Request.Context(), UploadRequest{
		OwnerID:      userID,
		OriginalName: file.Filename,
		Size:         file.Size,
		Content:      f,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), doc.ID, &userID, audit.ActionUploaded, c.ClientIP())
	c.JSON(http.StatusCreated, doc)
}

func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.UserID(c)
	docs, err := h.service.ListDocuments(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, _ := auth.UserID(c)
	doc, err := h.service.GetDocument(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, _ := auth.UserID(c)
	reader, err := h.service.DownloadDocument(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, _ := auth.UserID(c)
	if err := h.service.DeleteDocument(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("document request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
