package audit

import (
	"strings"
	"testing"

	"notas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bareEntity struct{ Value int }

func TestDescribe(t *testing.T) {
	t.Run("Code and name", func(t *testing.T) {
		d := Describe(&models.Project{ID: 3, Code: "P-100", Name: "Website Revamp"})
		assert.Equal(t, "Project", d.TypeName)
		require.NotNil(t, d.ID)
		assert.Equal(t, uint(3), *d.ID)
		require.NotNil(t, d.Summary)
		assert.Equal(t, "P-100 - Website Revamp", *d.Summary)
	})

	t.Run("Long description is truncated", func(t *testing.T) {
		desc := "This project covers the full rebuild of the customer portal and billing"
		d := Describe(&models.Expense{Description: desc})
		require.NotNil(t, d.Summary)
		assert.Equal(t, desc[:50]+"...", *d.Summary)
	})

	t.Run("Short description is kept", func(t *testing.T) {
		d := Describe(&models.Expense{Description: "Taxi"})
		require.NotNil(t, d.Summary)
		assert.Equal(t, "Taxi", *d.Summary)
	})

	t.Run("Description truncation counts runes", func(t *testing.T) {
		desc := strings.Repeat("é", 60)
		d := Describe(models.Expense{Description: desc})
		require.NotNil(t, d.Summary)
		assert.Equal(t, strings.Repeat("é", 50)+"...", *d.Summary)
	})

	t.Run("Code alone", func(t *testing.T) {
		d := Describe(&models.Invoice{Number: "INV-7", Description: "ignored"})
		require.NotNil(t, d.Summary)
		assert.Equal(t, "INV-7", *d.Summary)
	})

	t.Run("Title", func(t *testing.T) {
		d := Describe(&models.Reimbursement{Title: "Conference travel"})
		require.NotNil(t, d.Summary)
		assert.Equal(t, "Conference travel", *d.Summary)
	})

	t.Run("Name wins over email", func(t *testing.T) {
		d := Describe(&models.Client{Name: "Acme", Email: "billing@acme.test"})
		assert.Equal(t, "Acme", *d.Summary)
	})

	t.Run("Email fallback", func(t *testing.T) {
		d := Describe(&models.Client{Name: "  ", Email: "billing@acme.test"})
		require.NotNil(t, d.Summary)
		assert.Equal(t, "billing@acme.test", *d.Summary)
	})

	t.Run("No usable fields", func(t *testing.T) {
		d := Describe(&bareEntity{Value: 1})
		assert.Equal(t, "bareEntity", d.TypeName)
		assert.Nil(t, d.ID)
		assert.Nil(t, d.Summary)
	})

	t.Run("Unsaved entity has no id", func(t *testing.T) {
		d := Describe(&models.Project{Code: "X"})
		assert.Nil(t, d.ID)
	})

	t.Run("Summary is clamped", func(t *testing.T) {
		d := Describe(&models.Project{Code: "C", Name: strings.Repeat("n", 400)})
		require.NotNil(t, d.Summary)
		assert.Equal(t, maxMetaLength, len([]rune(*d.Summary)))
	})

	t.Run("Nil entity", func(t *testing.T) {
		d := Describe(nil)
		assert.Empty(t, d.TypeName)
	})
}
