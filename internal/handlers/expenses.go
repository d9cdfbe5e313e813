package handlers

import (
	"net/http"
	"time"

	"notas/internal/services"

	"github.com/gin-gonic/gin"
)

type ExpenseRequest struct {
	ProjectID   *uint     `json:"project_id"`
	Description string    `json:"description" binding:"required"`
	AmountCents int64     `json:"amount_cents" binding:"required,gt=0"`
	SpentOn     time.Time `json:"spent_on"`
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense, err := h.expenseService.Create(c.Request.Context(), services.ExpenseDTO{
		ProjectID:   req.ProjectID,
		Description: req.Description,
		AmountCents: req.AmountCents,
		SpentOn:     req.SpentOn,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) SubmitExpense(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.Submit(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}
