package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "task-manager-api/pkg/errors"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse represents a plain message response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeError maps a usecase error onto an HTTP response. Taxonomy errors
// surface their message with their status; anything else is a 500 whose
// detail is logged but not echoed to the client.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	status := apperrors.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, MessageResponse{Message: "Error del servidor"})
		return
	}
	c.JSON(status, MessageResponse{Message: err.Error()})
}

// writeBindError reports a malformed or invalid request body.
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
