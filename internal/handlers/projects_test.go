package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"notas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectEndpoints(t *testing.T) {
	h, db := setupTestHandler(t)
	r := h.SetupRouter()
	authz := bearer(t, 42, 7)

	w := do(r, http.MethodPost, "/api/v1/projects", authz, map[string]any{"code": "DIAG-42", "name": "Test"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	assert.Equal(t, uint(7), project.TenantID)

	path := fmt.Sprintf("/api/v1/projects/%d", project.ID)

	t.Run("Get", func(t *testing.T) {
		w := do(r, http.MethodGet, path, authz, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "DIAG-42")
	})

	t.Run("Other tenant gets 404", func(t *testing.T) {
		w := do(r, http.MethodGet, path, bearer(t, 1, 8), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Bad id", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/projects/abc", authz, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing fields", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/projects", authz, map[string]any{"code": "X"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Update", func(t *testing.T) {
		w := do(r, http.MethodPut, path, authz, map[string]any{"code": "DIAG-42", "name": "Renamed"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Renamed")
	})

	t.Run("List", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/projects", authz, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"items"`)
	})

	t.Run("Archive", func(t *testing.T) {
		w := do(r, http.MethodPost, path+"/archive", authz, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"removed_expenses":0`)

		w = do(r, http.MethodPost, path+"/archive", authz, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		w := do(r, http.MethodDelete, path, authz, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = do(r, http.MethodDelete, path, authz, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("tenant_id = ?", 7).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
