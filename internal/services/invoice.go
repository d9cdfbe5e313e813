package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notas/internal/models"
	"notas/internal/repository"
)

type InvoiceDTO struct {
	ClientID    uint   `json:"client_id"`
	ProjectID   *uint  `json:"project_id"`
	Number      string `json:"number"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
}

type InvoiceService struct {
	store *repository.Store
	now   func() time.Time
}

func NewInvoiceService(store *repository.Store) *InvoiceService {
	return &InvoiceService{store: store, now: time.Now}
}

func (s *InvoiceService) Create(ctx context.Context, dto InvoiceDTO) (*models.Invoice, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	number := strings.TrimSpace(dto.Number)
	if number == "" {
		return nil, invalid("number is required")
	}
	if dto.AmountCents <= 0 {
		return nil, invalid("amount must be positive")
	}
	if _, err := findOwned[models.Client](ctx, s.store.DB(), tenantID, dto.ClientID); err != nil {
		return nil, fmt.Errorf("client %d: %w", dto.ClientID, err)
	}

	invoice := &models.Invoice{
		TenantID:    tenantID,
		ClientID:    dto.ClientID,
		ProjectID:   dto.ProjectID,
		Number:      number,
		Description: dto.Description,
		AmountCents: dto.AmountCents,
		Status:      models.InvoiceStatusOpen,
		IssuedAt:    s.now().UTC(),
	}

	uow := s.store.Begin()
	if err := uow.Add(invoice); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return findOwned[models.Invoice](ctx, s.store.DB(), tenantID, id)
}

func (s *InvoiceService) MarkPaid(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, fmt.Errorf("%w: invoice is already paid", ErrInvalidState)
	}

	paidAt := s.now().UTC()
	invoice.Status = models.InvoiceStatusPaid
	invoice.PaidAt = &paidAt

	uow := s.store.Begin()
	if err := uow.Update(invoice); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	return invoice, nil
}

// Delete removes an open invoice. Paid invoices are kept for the books.
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return fmt.Errorf("%w: paid invoices cannot be deleted", ErrInvalidState)
	}

	uow := s.store.Begin()
	if err := uow.Delete(invoice); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}
