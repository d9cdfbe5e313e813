package services

import (
	"context"
	"fmt"
	"strings"

	"notas/internal/models"
	"notas/internal/repository"
)

type ProjectDTO struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ClientID    *uint  `json:"client_id"`
	BudgetCents int64  `json:"budget_cents"`
}

func (d ProjectDTO) validate() error {
	if strings.TrimSpace(d.Code) == "" {
		return invalid("code is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return invalid("name is required")
	}
	if d.BudgetCents < 0 {
		return invalid("budget cannot be negative")
	}
	return nil
}

type ProjectService struct {
	store *repository.Store
}

func NewProjectService(store *repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

func (s *ProjectService) Create(ctx context.Context, dto ProjectDTO) (*models.Project, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := dto.validate(); err != nil {
		return nil, err
	}

	project := &models.Project{
		TenantID:    tenantID,
		ClientID:    dto.ClientID,
		Code:        strings.TrimSpace(dto.Code),
		Name:        strings.TrimSpace(dto.Name),
		Description: dto.Description,
		Status:      models.ProjectStatusActive,
		BudgetCents: dto.BudgetCents,
	}

	uow := s.store.Begin()
	if err := uow.Add(project); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return findOwned[models.Project](ctx, s.store.DB(), tenantID, id)
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	var projects []models.Project
	err = s.store.DB().WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("code").
		Find(&projects).Error
	return projects, err
}

func (s *ProjectService) Update(ctx context.Context, id uint, dto ProjectDTO) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := dto.validate(); err != nil {
		return nil, err
	}

	project.Code = strings.TrimSpace(dto.Code)
	project.Name = strings.TrimSpace(dto.Name)
	project.Description = dto.Description
	project.ClientID = dto.ClientID
	project.BudgetCents = dto.BudgetCents

	uow := s.store.Begin()
	if err := uow.Update(project); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// Archive marks the project archived and drops its unsubmitted expenses in a
// single commit. It returns the number of expenses removed.
func (s *ProjectService) Archive(ctx context.Context, id uint) (*models.Project, int, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if project.Status == models.ProjectStatusArchived {
		return nil, 0, fmt.Errorf("%w: project is already archived", ErrInvalidState)
	}

	var drafts []models.Expense
	err = s.store.DB().WithContext(ctx).
		Where("tenant_id = ? AND project_id = ? AND status = ?", project.TenantID, project.ID, models.ExpenseStatusDraft).
		Find(&drafts).Error
	if err != nil {
		return nil, 0, err
	}

	project.Status = models.ProjectStatusArchived
	uow := s.store.Begin()
	if err := uow.Update(project); err != nil {
		return nil, 0, err
	}
	for i := range drafts {
		if err := uow.Delete(&drafts[i]); err != nil {
			return nil, 0, err
		}
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to archive project: %w", err)
	}
	return project, len(drafts), nil
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	uow := s.store.Begin()
	if err := uow.Delete(project); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
