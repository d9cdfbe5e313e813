package main

import (
	"context"
	"errors"
	"fmt"

	"notas/internal/models"
	"notas/internal/repository"
	"notas/pkg/utils"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrAlreadySeeded = errors.New("tenant already exists")

type SeedOptions struct {
	TenantName string
	TenantSlug string
	AdminName  string
	AdminEmail string
	Clients    int
	Projects   int
}

type SeedResult struct {
	Tenant   *models.Tenant
	Admin    *models.User
	Password string
	Clients  []*models.Client
	Projects []*models.Project
}

// Seed creates the tenant first, then everything that belongs to it in a
// second commit. If the second commit fails the tenant is removed again so
// the seed can be re-run.
func Seed(ctx context.Context, store *repository.Store, opts SeedOptions) (*SeedResult, error) {
	var existing models.Tenant
	err := store.DB().WithContext(ctx).Where("slug = ?", opts.TenantSlug).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadySeeded, opts.TenantSlug)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.WithMessage(err, "could not look up tenant")
	}

	tenant := &models.Tenant{Name: opts.TenantName, Slug: opts.TenantSlug}
	uow := store.Begin()
	if err := uow.Add(tenant); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, pkgerrors.WithMessage(err, "failed to create tenant")
	}

	result, err := seedTenantData(ctx, store, tenant, opts)
	if err != nil {
		uow = store.Begin()
		if delErr := uow.Delete(tenant); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		if delErr := uow.Commit(ctx); delErr != nil {
			return nil, errors.Join(err, pkgerrors.WithMessage(delErr, "failed to remove partially seeded tenant"))
		}
		return nil, err
	}
	return result, nil
}

func seedTenantData(ctx context.Context, store *repository.Store, tenant *models.Tenant, opts SeedOptions) (*SeedResult, error) {
	password := utils.GeneratePassword()
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "failed to hash admin password")
	}
	result := &SeedResult{
		Tenant:   tenant,
		Password: password,
		Admin: &models.User{
			TenantID:     tenant.ID,
			Name:         opts.AdminName,
			Email:        opts.AdminEmail,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		},
	}

	uow := store.Begin()
	if err := uow.Add(result.Admin); err != nil {
		return nil, err
	}
	for i := 1; i <= opts.Clients; i++ {
		client := &models.Client{
			TenantID: tenant.ID,
			Name:     fmt.Sprintf("Client %02d", i),
			Email:    fmt.Sprintf("billing%02d@%s.test", i, opts.TenantSlug),
		}
		result.Clients = append(result.Clients, client)
		if err := uow.Add(client); err != nil {
			return nil, err
		}
	}
	for i := 1; i <= opts.Projects; i++ {
		project := &models.Project{
			TenantID:    tenant.ID,
			Code:        utils.GenerateCode("PRJ-", 4),
			Name:        fmt.Sprintf("Demo project %d", i),
			Status:      models.ProjectStatusActive,
			BudgetCents: int64(i) * 100_000,
		}
		result.Projects = append(result.Projects, project)
		if err := uow.Add(project); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, pkgerrors.WithMessage(err, "failed to create tenant data")
	}

	return result, nil
}
