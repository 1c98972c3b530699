package v1

import (
	"net/http"

	"github.com/contentcraft/contentcraft-api/internal/gateway"
	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	service gateway.Service
}

func NewConnectionHandler(service gateway.Service) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

// TestConnection runs a canned prompt through the active provider.
//
// POST /api/v1/test-connection
func (h *ConnectionHandler) TestConnection(c *gin.Context) {
	result, err := h.service.TestConnection(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"response": result.Text,
	})
}

// Usage reports the hourly quota window for the active provider.
//
// GET /api/v1/usage
func (h *ConnectionHandler) Usage(c *gin.Context) {
	stats, err := h.service.UsageStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
