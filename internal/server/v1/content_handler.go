package v1

import (
	"net/http"

	"github.com/contentcraft/contentcraft-api/internal/gateway"
	"github.com/contentcraft/contentcraft-api/internal/server/validator"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	service gateway.Service
}

func NewContentHandler(service gateway.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

// Enhance rewrites an existing post.
//
// POST /api/v1/enhance
func (h *ContentHandler) Enhance(c *gin.Context) {
	var req api.EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	result, err := h.service.Enhance(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Generate writes a new post from a brief.
//
// POST /api/v1/generate
func (h *ContentHandler) Generate(c *gin.Context) {
	var req api.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
