// Package handlers provides HTTP API request handlers.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordwall/backend/internal/model"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// sendError sends an error response with the appropriate status code.
func sendError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// sendDomainError maps a core error onto the HTTP error envelope.
func sendDomainError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrWallNotFound):
		sendError(c, http.StatusNotFound, "WALL_NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrWordNotFound):
		sendError(c, http.StatusNotFound, "WORD_NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrWallInactive):
		sendError(c, http.StatusConflict, "WALL_INACTIVE", err.Error())
	case errors.Is(err, model.ErrPlayerRequired),
		errors.Is(err, model.ErrWallHashRequired),
		errors.Is(err, model.ErrWordTooLong):
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}
