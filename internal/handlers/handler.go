package handlers

import (
	"log/slog"

	"notas/internal/config"
	"notas/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg            config.Config
	logger         *slog.Logger
	db             *gorm.DB
	rdb            *redis.Client
	registry       *prometheus.Registry
	projectService *services.ProjectService
	invoiceService *services.InvoiceService
	expenseService *services.ExpenseService
	auditService   *services.AuditService
}

// NewHandler wires the HTTP layer. rdb and registry are optional.
func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	registry *prometheus.Registry,
	projectService *services.ProjectService,
	invoiceService *services.InvoiceService,
	expenseService *services.ExpenseService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		rdb:            rdb,
		registry:       registry,
		projectService: projectService,
		invoiceService: invoiceService,
		expenseService: expenseService,
		auditService:   auditService,
	}
}
