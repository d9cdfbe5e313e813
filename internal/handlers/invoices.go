package handlers

import (
	"net/http"

	"notas/internal/services"

	"github.com/gin-gonic/gin"
)

type InvoiceRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	ProjectID   *uint  `json:"project_id"`
	Number      string `json:"number" binding:"required,max=40"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invoice, err := h.invoiceService.Create(c.Request.Context(), services.InvoiceDTO{
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Number:      req.Number,
		Description: req.Description,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) MarkInvoicePaid(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) DeleteInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
