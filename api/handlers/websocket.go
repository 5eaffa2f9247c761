package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wordwall/backend/internal/ws"
)

// WebSocketHandler serves the live-update channel.
type WebSocketHandler struct {
	wsHandler *ws.Handler
	logger    *slog.Logger
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(wsHandler *ws.Handler, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{wsHandler: wsHandler, logger: logger}
}

// Connect handles GET /ws - opens a live-update channel.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	if err := h.wsHandler.HandleConnection(c.Writer, c.Request); err != nil {
		// The upgrader has already written the HTTP error
		h.logger.Debug("websocket upgrade failed", "error", err)
	}
}

// RegisterRoutes registers the WebSocket handler routes on a Gin router group.
func (h *WebSocketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Connect)
}
