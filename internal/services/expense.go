package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notas/internal/models"
	"notas/internal/repository"
)

type ExpenseDTO struct {
	ProjectID   *uint     `json:"project_id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	SpentOn     time.Time `json:"spent_on"`
}

type ExpenseService struct {
	store *repository.Store
}

func NewExpenseService(store *repository.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

func (s *ExpenseService) Create(ctx context.Context, dto ExpenseDTO) (*models.Expense, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Description) == "" {
		return nil, invalid("description is required")
	}
	if dto.AmountCents <= 0 {
		return nil, invalid("amount must be positive")
	}
	if dto.ProjectID != nil {
		project, err := findOwned[models.Project](ctx, s.store.DB(), tenantID, *dto.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", *dto.ProjectID, err)
		}
		if project.Status == models.ProjectStatusArchived {
			return nil, fmt.Errorf("%w: project is archived", ErrInvalidState)
		}
	}

	spentOn := dto.SpentOn
	if spentOn.IsZero() {
		spentOn = time.Now()
	}
	expense := &models.Expense{
		TenantID:    tenantID,
		ProjectID:   dto.ProjectID,
		Description: strings.TrimSpace(dto.Description),
		AmountCents: dto.AmountCents,
		Status:      models.ExpenseStatusDraft,
		SpentOn:     spentOn.UTC(),
	}

	uow := s.store.Begin()
	if err := uow.Add(expense); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// Submit moves a draft expense out of draft so that archiving its project
// keeps it.
func (s *ExpenseService) Submit(ctx context.Context, id uint) (*models.Expense, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	expense, err := findOwned[models.Expense](ctx, s.store.DB(), tenantID, id)
	if err != nil {
		return nil, err
	}
	if expense.Status != models.ExpenseStatusDraft {
		return nil, fmt.Errorf("%w: expense is already submitted", ErrInvalidState)
	}

	expense.Status = models.ExpenseStatusSubmitted
	uow := s.store.Begin()
	if err := uow.Update(expense); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to submit expense: %w", err)
	}
	return expense, nil
}
