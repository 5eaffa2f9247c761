package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordwall/backend/internal/model"
	"github.com/wordwall/backend/internal/wall"
)

// WallWords announces wall changes to live-update clients and counts the
// words collected on a wall.
type WallWords interface {
	PublishWall(w *model.Wall)
	CountForWall(ctx context.Context, wallID string) (int, error)
}

// WallDetailResponse is the by-hash lookup shape.
type WallDetailResponse struct {
	model.WallDetail
	WordCount int `json:"word_count"`
}

// WallHandler handles HTTP requests for wall management.
type WallHandler struct {
	registry *wall.Registry
	words    WallWords
	logger   *slog.Logger
}

// NewWallHandler creates a new WallHandler.
func NewWallHandler(registry *wall.Registry, words WallWords, logger *slog.Logger) *WallHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WallHandler{
		registry: registry,
		words:    words,
		logger:   logger,
	}
}

// SetNameRequest is the request body for renaming a wall.
type SetNameRequest struct {
	Name *string `json:"name" binding:"required"`
}

// SetActiveRequest is the request body for opening or closing a wall.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// Create handles POST /walls - creates a new wall.
func (h *WallHandler) Create(c *gin.Context) {
	w := h.registry.Create()
	c.JSON(http.StatusCreated, w.Summary())
}

// List handles GET /walls/list-all - lists every wall in creation order.
func (h *WallHandler) List(c *gin.Context) {
	walls := h.registry.List()

	response := make([]model.WallSummary, len(walls))
	for i, w := range walls {
		response[i] = w.Summary()
	}
	c.JSON(http.StatusOK, response)
}

// GetByHash handles GET /walls/by-hash/:hash.
func (h *WallHandler) GetByHash(c *gin.Context) {
	w, err := h.registry.FindByHash(c.Param("hash"))
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}
	resp := WallDetailResponse{WallDetail: w.Detail()}
	if h.words != nil {
		count, err := h.words.CountForWall(c.Request.Context(), w.ID())
		if err != nil {
			sendDomainError(c, h.logger, err)
			return
		}
		resp.WordCount = count
	}
	c.JSON(http.StatusOK, resp)
}

// GetName handles GET /walls/:id/name.
func (h *WallHandler) GetName(c *gin.Context) {
	w, err := h.registry.FindByID(c.Param("id"))
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w.Name())
}

// SetName handles POST /walls/:id/name.
func (h *WallHandler) SetName(c *gin.Context) {
	var req SetNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}

	w, err := h.registry.FindByID(c.Param("id"))
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}

	w.SetName(*req.Name)
	h.publish(w)
	c.Status(http.StatusNoContent)
}

// GetActive handles GET /walls/:id/active.
func (h *WallHandler) GetActive(c *gin.Context) {
	w, err := h.registry.FindByID(c.Param("id"))
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w.Active())
}

// SetActive handles POST /walls/:id/active.
func (h *WallHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}

	w, err := h.registry.FindByID(c.Param("id"))
	if err != nil {
		sendDomainError(c, h.logger, err)
		return
	}

	w.SetActive(*req.Active)
	h.publish(w)
	c.Status(http.StatusNoContent)
}

func (h *WallHandler) publish(w *model.Wall) {
	if h.words != nil {
		h.words.PublishWall(w)
	}
}

// RegisterRoutes registers the wall handler routes on a Gin router group.
func (h *WallHandler) RegisterRoutes(rg *gin.RouterGroup) {
	walls := rg.Group("/walls")
	{
		walls.POST("", h.Create)
		walls.GET("/list-all", h.List)
		walls.GET("/by-hash/:hash", h.GetByHash)
		walls.GET("/:id/name", h.GetName)
		walls.POST("/:id/name", h.SetName)
		walls.GET("/:id/active", h.GetActive)
		walls.POST("/:id/active", h.SetActive)
	}
}
