package services

import (
	"context"
	"testing"

	"notas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService(t *testing.T) {
	store, db := setupTestStore(t)
	service := NewProjectService(store)
	ctx := asUser(42, 7)

	var created *models.Project

	t.Run("Create records one audit entry", func(t *testing.T) {
		var err error
		created, err = service.Create(ctx, ProjectDTO{Code: "DIAG-42", Name: "Test"})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, uint(7), created.TenantID)

		var logs []models.AuditLog
		require.NoError(t, db.Find(&logs).Error)
		require.Len(t, logs, 1)
		assert.Equal(t, "PROJECT_CREATE", logs[0].Action)
		assert.Equal(t, "Project", logs[0].EntityType)
		assert.Equal(t, "DIAG-42 - Test", *logs[0].Meta)
		assert.Equal(t, uint(42), *logs[0].ActorUserID)
		assert.Equal(t, uint(7), *logs[0].TenantID)
		assert.Equal(t, created.ID, *logs[0].EntityID)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := service.Create(ctx, ProjectDTO{Code: " ", Name: "x"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = service.Create(ctx, ProjectDTO{Code: "X", Name: "x", BudgetCents: -1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("No tenant", func(t *testing.T) {
		_, err := service.Create(context.Background(), ProjectDTO{Code: "A", Name: "B"})
		assert.ErrorIs(t, err, ErrNoTenant)
	})

	t.Run("Duplicate code rolls back", func(t *testing.T) {
		before := len(actions(t, db))
		_, err := service.Create(ctx, ProjectDTO{Code: "DIAG-42", Name: "Again"})
		assert.Error(t, err)
		assert.Len(t, actions(t, db), before)
	})

	t.Run("Other tenants cannot see it", func(t *testing.T) {
		_, err := service.Get(asUser(1, 8), created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := service.Update(ctx, created.ID, ProjectDTO{Code: "DIAG-42", Name: "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, "PROJECT_UPDATE", actions(t, db)[1])
	})

	t.Run("List", func(t *testing.T) {
		projects, err := service.List(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, created.ID))
		got := actions(t, db)
		assert.Equal(t, "PROJECT_DELETE", got[len(got)-1])
		assert.ErrorIs(t, service.Delete(ctx, created.ID), ErrNotFound)
	})
}

func TestProjectArchive(t *testing.T) {
	store, db := setupTestStore(t)
	projects := NewProjectService(store)
	expenses := NewExpenseService(store)
	ctx := asUser(1, 1)

	project, err := projects.Create(ctx, ProjectDTO{Code: "ARC", Name: "Archivable"})
	require.NoError(t, err)
	draft, err := expenses.Create(ctx, ExpenseDTO{ProjectID: &project.ID, Description: "Draft taxi", AmountCents: 1200})
	require.NoError(t, err)
	kept, err := expenses.Create(ctx, ExpenseDTO{ProjectID: &project.ID, Description: "Hotel", AmountCents: 9900})
	require.NoError(t, err)
	_, err = expenses.Submit(ctx, kept.ID)
	require.NoError(t, err)

	archived, removed, err := projects.Archive(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusArchived, archived.Status)
	assert.Equal(t, 1, removed)

	var remaining []models.Expense
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	assert.Equal(t, []string{
		"PROJECT_CREATE",
		"EXPENSE_CREATE",
		"EXPENSE_CREATE",
		"EXPENSE_UPDATE",
		"PROJECT_UPDATE",
		"EXPENSE_DELETE",
	}, actions(t, db))

	var deleted models.AuditLog
	require.NoError(t, db.Where("action = ?", "EXPENSE_DELETE").First(&deleted).Error)
	assert.Equal(t, draft.ID, *deleted.EntityID)

	t.Run("Archived twice", func(t *testing.T) {
		_, _, err := projects.Archive(ctx, project.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("No expenses on archived projects", func(t *testing.T) {
		_, err := expenses.Create(ctx, ExpenseDTO{ProjectID: &project.ID, Description: "Late", AmountCents: 1})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}
