package v1

import (
	"net/http"

	"github.com/contentcraft/contentcraft-api/internal/gateway"
	"github.com/contentcraft/contentcraft-api/internal/server/validator"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service gateway.Service
}

func NewChatHandler(service gateway.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat answers a free-form question, optionally about a post.
//
// POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	result, err := h.service.Query(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
