package signatures

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/internal/audit"
	"penscribe/sign-portal/sign-portal-backend/internal/auth"
	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
	"penscribe/sign-portal/sign-portal-backend/pkg/geometry"
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
	sigs := rg.Group("/signatures")
	{
		sigs.POST("", h.Place)
		sigs.GET("/document/:id", h.ListByDocument)
		sigs.GET("/:id", h.Get)
		sigs.PATCH("/:id/status", h.UpdateStatus)
		sigs.POST("/finalize", h.Finalize)
	}
}

type placeRequest struct {
	DocumentID    uuid.UUID `json:"document_id" binding:"required"`
	X             *float64  `json:"x" binding:"required"`
	Y             *float64  `json:"y" binding:"required"`
	Page          *int      `json:"page" binding:"required"`
	Value         string    `json:"value"`
	Font          string    `json:"font"`
	PreviewWidth  float64   `json:"preview_width"`
	PreviewHeight float64   `json:"preview_height"`
}

func (h *Handler) Place(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := auth.UserID(c)
	place := PlaceRequest{
		DocumentID: req.DocumentID,
		UserID:     userID,
		X:          *req.X,
		Y:          *req.Y,
		Page:       *req.Page,
		Value:      req.Value,
		Font:       req.Font,
	}
	if req.PreviewWidth != 0 || req.PreviewHeight != 0 {
		place.PreviewSize = &geometry.Size{Width: req.PreviewWidth, Height: req.PreviewHeight}
	}

	sig, err := h.service.Place(c.Request.Context(), place)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), sig.DocumentID, &userID, audit.ActionPlaced, c.ClientIP())
	c.JSON(http.StatusCreated, sig)
}

func (h *Handler) ListByDocument(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	sigs, err := h.service.ListByDocument(c.Request.Context(), docID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sigs)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature id"})
		return
	}

	sig, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sig)
}

type statusRequest struct {
	Status Status `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sig, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, _ := auth.UserID(c)
	action := audit.ActionSigned
	if req.Status == StatusRejected {
		action = audit.ActionRejected
	}
	h.audit.Record(c.Request.Context(), sig.DocumentID, &userID, action, c.ClientIP())

	c.JSON(http.StatusOK, sig)
}

type finalizeRequest struct {
	DocumentID    uuid.UUID `json:"document_id" binding:"required"`
	SignatureText string    `json:"signature_text" binding:"required"`
	X             *float64  `json:"x" binding:"required"`
	Y             *float64  `json:"y" binding:"required"`
	Page          int       `json:"page"`
	Font          string    `json:"font"`
	FontSize      float64   `json:"font_size"`
}

func (h *Handler) Finalize(c *gin.Context) {
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signedPath, err := h.service.Finalize(c.Request.Context(), FinalizeRequest{
		DocumentID:    req.DocumentID,
		SignatureText: req.SignatureText,
		X:             *req.X,
		Y:             *req.Y,
		Page:          req.Page,
		Font:          req.Font,
		FontSize:      req.FontSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, _ := auth.UserID(c)
	h.audit.Record(c.Request.Context(), req.DocumentID, &userID, audit.ActionFinalized, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"message":     "signature embedded",
		"signed_path": "/uploads/" + filepath.Base(signedPath),
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("signature request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
