package handlers

import (
	"context"
	"net/http"
	"time"

	"notas/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if h.registry != nil {
		r.Use(middleware.NewHTTPMetrics(h.registry).Middleware())
	}
	r.Use(middleware.RequestLogger(h.logger))

	r.GET("/health", h.Health)
	if h.registry != nil && h.cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	api.Use(middleware.BearerAuth(h.cfg.JWTSecret), h.TenantRequired())
	{
		api.GET("/projects", h.ListProjects)
		api.POST("/projects", h.CreateProject)
		api.GET("/projects/:id", h.GetProject)
		api.PUT("/projects/:id", h.UpdateProject)
		api.POST("/projects/:id/archive", h.ArchiveProject)
		api.DELETE("/projects/:id", h.DeleteProject)

		api.POST("/expenses", h.CreateExpense)
		api.POST("/expenses/:id/submit", h.SubmitExpense)

		api.POST("/invoices", h.CreateInvoice)
		api.GET("/invoices/:id", h.GetInvoice)
		api.POST("/invoices/:id/pay", h.MarkInvoicePaid)
		api.DELETE("/invoices/:id", h.DeleteInvoice)

		api.GET("/audit-logs", h.ListAuditLogs)
	}

	return r
}

// Health reports database and, when configured, redis reachability.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok"}
	healthy := true
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unreachable"
		healthy = false
	}
	if h.rdb != nil {
		checks["redis"] = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "checks": checks})
}
