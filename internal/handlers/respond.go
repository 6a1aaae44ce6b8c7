package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"risk-register/internal/auth"
	"risk-register/internal/database"
	"risk-register/internal/middleware"

	"github.com/gin-gonic/gin"
)

// principal pulls the authenticated principal out of the context. The
// auth middleware guarantees it is there; the abort is for routes
// wired without it by mistake.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid token"})
	}
	return p, ok
}

// idParam parses a numeric path parameter. Non-numeric ids cannot name
// any record, so they read as not found.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// storeError maps repository errors onto status codes.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, database.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, database.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "Already exists"})
	default:
		slog.Error("store operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
