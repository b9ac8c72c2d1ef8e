package publiclink

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/internal/audit"
	"penscribe/sign-portal/sign-portal-backend/internal/auth"
	"penscribe/sign-portal/sign-portal-backend/internal/documents"
	"penscribe/sign-portal/sign-portal-backend/internal/signatures"
	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
	"penscribe/sign-portal/sign-portal-backend/pkg/geometry"
)

type Handler struct {
	issuer    *Issuer
	docs      documents.Service
	sigs      signatures.Service
	audit     audit.Recorder
	publicURL string
	logger    *zap.Logger
}

func NewHandler(issuer *Issuer, docs documents.Service, sigs signatures.Service, auditor audit.Recorder, publicURL string, logger *zap.Logger) *Handler {
	return &Handler{
		issuer:    issuer,
		docs:      docs,
		sigs:      sigs,
		audit:     auditor,
		publicURL: publicURL,
		logger:    logger,
	}
}

// RegisterOwnerRoutes registers the authenticated link-issuance endpoint.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/docs/:id/share", h.Share)
}

// RegisterPublicRoutes registers the anonymous signing endpoints.
func (h *Handler) RegisterPublicRoutes(r *gin.Engine) {
	public := r.Group("/public")
	{
		public.GET("/sign/:token", h.GetDocument)
		public.POST("/sign/:token", h.Sign)
	}
}

func (h *Handler) Share(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, _ := auth.UserID(c)
	doc, err := h.docs.GetDocument(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.issuer.Issue(doc.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), doc.ID, &userID, audit.ActionShared, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"url": fmt.Sprintf("%s/public/sign/%s", h.publicURL, token),
	})
}

// GetDocument verifies a link and returns the document the holder may sign,
// including page dimensions so the client can place the mark.
func (h *Handler) GetDocument(c *gin.Context) {
	docID, err := h.issuer.Verify(c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	doc, err := h.docs.Resolve(c.Request.Context(), docID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

type publicSignRequest struct {
	X             *float64 `json:"x" binding:"required"`
	Y             *float64 `json:"y" binding:"required"`
	Page          *int     `json:"page" binding:"required"`
	SignerName    string   `json:"signer_name" binding:"required"`
	PreviewWidth  float64  `json:"preview_width"`
	PreviewHeight float64  `json:"preview_height"`
}

// Sign records an anonymous signature for the link's document. The record
// is created directly in signed state: link holders are not reviewed by the
// document owner.
func (h *Handler) Sign(c *gin.Context) {
	docID, err := h.issuer.Verify(c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req publicSignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sign := signatures.PublicSignRequest{
		DocumentID: docID,
		X:          *req.X,
		Y:          *req.Y,
		Page:       *req.Page,
		SignerName: req.SignerName,
	}
	if req.PreviewWidth != 0 || req.PreviewHeight != 0 {
		sign.PreviewSize = &geometry.Size{Width: req.PreviewWidth, Height: req.PreviewHeight}
	}

	sig, err := h.sigs.CreatePublic(c.Request.Context(), sign)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), docID, nil, audit.ActionPublicSigned, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "signature added", "signature": sig})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("public link request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
