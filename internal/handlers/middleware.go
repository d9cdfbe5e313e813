package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"notas/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TenantRequired rejects authenticated callers whose token carries no tenant.
func (h *Handler) TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetUint("tenant_id") == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No tenant context"})
			return
		}
		c.Next()
	}
}

// respondError maps service errors to status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidPagination):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, gorm.ErrDuplicatedKey):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoTenant):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
