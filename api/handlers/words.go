package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordwall/backend/internal/model"
	"github.com/wordwall/backend/internal/word"
)

// WordHandler handles HTTP requests for word submission.
type WordHandler struct {
	manager *word.Manager
	logger  *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(manager *word.Manager, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{manager: manager, logger: logger}
}

// ListForPlayer handles GET /words/:wall_id?player_id= - lists a player's words.
func (h *WordHandler) ListForPlayer(c *gin.Context) {
	words, err := h.manager.ListForPlayer(c.Request.Context(), c.Param("wall_id"), c.Query("player_id"))
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// ListForWall handles GET /walls/:id/words - lists every word on a wall.
func (h *WordHandler) ListForWall(c *gin.Context) {
	words, err := h.manager.ListForWall(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// Add handles PUT /words?player_id= - adds a word for a player.
func (h *WordHandler) Add(c *gin.Context) {
	var req model.AddWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = c.Query("player_id")
	}

	words, err := h.manager.Add(c.Request.Context(), &req)
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// Update handles POST /words - edits one of a player's words.
func (h *WordHandler) Update(c *gin.Context) {
	var req model.UpdateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = c.Query("player_id")
	}

	words, err := h.manager.Update(c.Request.Context(), &req)
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// RegisterRoutes registers the word handler routes on a Gin router group.
func (h *WordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	words := rg.Group("/words")
	{
		words.GET("/:wall_id", h.ListForPlayer)
		words.PUT("", h.Add)
		words.PUT("/", h.Add)
		words.POST("", h.Update)
		words.POST("/", h.Update)
	}
	rg.GET("/walls/:id/words", h.ListForWall)
}
