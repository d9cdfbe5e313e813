package services

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"notas/internal/models"
	"notas/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServiceList(t *testing.T) {
	ctx := context.Background()
	_, db := setupTestStore(t)
	service := NewAuditService(repository.NewAuditRepository(db), 200, testLogger())

	actor := &models.User{TenantID: 1, Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(actor).Error)
	ghost := uint(999)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	logs := make([]models.AuditLog, 0, 250)
	for i := 1; i <= 250; i++ {
		id := uint(i)
		meta := fmt.Sprintf("P-%d", i)
		log := models.AuditLog{
			Action:     "PROJECT_UPDATE",
			EntityType: "Project",
			EntityID:   &id,
			Meta:       &meta,
			TenantID:   &actor.TenantID,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		switch i % 3 {
		case 0:
			log.ActorUserID = &actor.ID
		case 1:
			log.ActorUserID = &ghost
		}
		logs = append(logs, log)
	}
	require.NoError(t, db.CreateInBatches(logs, 100).Error)

	t.Run("Second page", func(t *testing.T) {
		page, err := service.List(ctx, 1, 2, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(250), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 100, page.Limit)
		require.Len(t, page.Items, 100)
		assert.Equal(t, uint(150), *page.Items[0].EntityID)
		assert.Equal(t, uint(51), *page.Items[99].EntityID)
	})

	t.Run("Actors are joined", func(t *testing.T) {
		page, err := service.List(ctx, 1, 1, 3)
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		// Entities 250, 249 and 248: ghost actor, actor, no actor.
		assert.Nil(t, page.Items[0].ActorUser)
		require.NotNil(t, page.Items[1].ActorUser)
		assert.Equal(t, "Ada", page.Items[1].ActorUser.Name)
		assert.Equal(t, "ada@example.com", page.Items[1].ActorUser.Email)
		assert.Nil(t, page.Items[2].ActorUser)
	})

	t.Run("Limit is capped", func(t *testing.T) {
		page, err := service.List(ctx, 1, 1, 1000)
		require.NoError(t, err)
		assert.Equal(t, 200, page.Limit)
		assert.Len(t, page.Items, 200)
	})

	t.Run("Page past the end", func(t *testing.T) {
		page, err := service.List(ctx, 1, 10, 100)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.NotNil(t, page.Items)
		assert.Equal(t, int64(250), page.Total)
	})

	t.Run("Invalid pagination", func(t *testing.T) {
		for _, tc := range []struct{ page, limit int }{{0, 10}, {1, 0}, {-1, 10}, {math.MaxInt, 200}} {
			_, err := service.List(ctx, 1, tc.page, tc.limit)
			assert.ErrorIs(t, err, ErrInvalidPagination, "page=%d limit=%d", tc.page, tc.limit)
		}
	})

	t.Run("Missing tenant", func(t *testing.T) {
		_, err := service.List(ctx, 0, 1, 10)
		assert.ErrorIs(t, err, ErrNoTenant)
	})
}
