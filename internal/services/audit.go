package services

import (
	"context"
	"log/slog"
	"time"

	"notas/internal/repository"
)

// AuditRecordView is one entry of the audit listing.
type AuditRecordView struct {
	ID         uint                        `json:"id"`
	Action     string                      `json:"action"`
	EntityType string                      `json:"entityType"`
	EntityID   *uint                       `json:"entityId"`
	Meta       *string                     `json:"meta"`
	ActorUser  *repository.ActorProjection `json:"actorUser"`
	CreatedAt  time.Time                   `json:"createdAt"`
}

type AuditPage struct {
	Items []AuditRecordView `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type AuditService struct {
	repo     *repository.AuditRepository
	maxLimit int
	logger   *slog.Logger
}

func NewAuditService(repo *repository.AuditRepository, maxLimit int, logger *slog.Logger) *AuditService {
	if maxLimit <= 0 {
		maxLimit = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{repo: repo, maxLimit: maxLimit, logger: logger}
}

// List returns one page of a tenant's audit trail, newest first. Pages start
// at 1; limit is capped at the configured maximum.
func (s *AuditService) List(ctx context.Context, tenantID uint, page, limit int) (*AuditPage, error) {
	if tenantID == 0 {
		return nil, ErrNoTenant
	}
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPagination
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	offset := (page - 1) * limit
	if offset/limit != page-1 {
		return nil, ErrInvalidPagination
	}

	logs, total, err := s.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}

	var actorIDs []uint
	seen := make(map[uint]bool)
	for _, l := range logs {
		if l.ActorUserID != nil && !seen[*l.ActorUserID] {
			seen[*l.ActorUserID] = true
			actorIDs = append(actorIDs, *l.ActorUserID)
		}
	}
	actors, err := s.repo.ActorsByID(ctx, actorIDs)
	if err != nil {
		return nil, err
	}

	items := make([]AuditRecordView, 0, len(logs))
	for _, l := range logs {
		view := AuditRecordView{
			ID:         l.ID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Meta:       l.Meta,
			CreatedAt:  l.CreatedAt.UTC(),
		}
		if l.ActorUserID != nil {
			if actor, ok := actors[*l.ActorUserID]; ok {
				view.ActorUser = &actor
			} else {
				s.logger.DebugContext(ctx, "audit actor no longer exists", "actor_user_id", *l.ActorUserID)
			}
		}
		items = append(items, view)
	}

	return &AuditPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}
