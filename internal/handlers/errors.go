// Package handlers implements the JSON API on top of the service layer. The
// handlers carry no domain logic: they bind requests, resolve the acting
// user, call one service operation and translate its error into a status.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplist-app/shoplist/internal/auth"
	"github.com/shoplist-app/shoplist/internal/models"
)

// respondError maps a service error onto an HTTP status. Unrecognized errors
// become a plain 500 without leaking their message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidName),
		errors.Is(err, auth.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotOwner),
		errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
