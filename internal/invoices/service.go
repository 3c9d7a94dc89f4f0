package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SakshamKandel/peakbrew-sub000/internal/customers"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/logger"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/pagination"
)

// Service defines the behavior needed by the invoices controller.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateInvoiceDTO) (*InvoiceDTO, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*InvoiceDTO, error)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error)
	Update(ctx context.Context, userID, id uuid.UUID, dto UpdateInvoiceDTO) (*InvoiceDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// rollupStore is the slice of the customers repo the invoice service needs to
// keep the denormalized rollups roughly current.
type rollupStore interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Customer, error)
	ComputeRollup(ctx context.Context, customerID uuid.UUID) (customers.RollupTotals, error)
	WriteRollup(ctx context.Context, customerID uuid.UUID, totals customers.RollupTotals) error
	AppendPaymentRecord(ctx context.Context, record *models.PaymentRecord) error
}

type service struct {
	repo    repository
	rollups rollupStore
	logg    *logger.Logger
}

// ServiceParams bundles the dependencies required to build an invoice service.
type ServiceParams struct {
	Repo    repository
	Rollups rollupStore
	Logger  *logger.Logger
}

// NewService constructs an invoices service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("invoices repository is required")
	}
	if params.Rollups == nil {
		return nil, fmt.Errorf("rollup store is required")
	}
	return &service{repo: params.Repo, rollups: params.Rollups, logg: params.Logger}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateInvoiceDTO) (*InvoiceDTO, error) {
	status, err := enums.ParseInvoiceStatus(dto.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice status")
	}
	if len(dto.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice needs at least one item")
	}

	invoice := &models.Invoice{
		UserID:        userID,
		Number:        strings.TrimSpace(dto.Number),
		CustomerName:  strings.TrimSpace(dto.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(dto.CustomerEmail)),
		Status:        status,
		Date:          dto.Date.UTC(),
	}

	if dto.CustomerID != nil {
		customer, err := s.rollups.FindByID(ctx, userID, *dto.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
		}
		invoice.CustomerID = &customer.ID
		invoice.CustomerName = customer.Name
		invoice.CustomerEmail = customer.Email
	}
	if invoice.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	invoice.Items, invoice.Total = buildItems(dto.Items)

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create invoice")
	}

	s.propagateRollup(ctx, invoice, true)
	return FromModel(invoice), nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(invoice), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, userID, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list invoices")
	}

	page := &Page{Invoices: make([]InvoiceDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		page.Invoices = append(page.Invoices, *FromModel(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{SortTime: last.Date, ID: last.ID})
	}
	return page, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, dto UpdateInvoiceDTO) (*InvoiceDTO, error) {
	invoice, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	statusChangedToPaid := false
	if dto.Status != nil {
		status, err := enums.ParseInvoiceStatus(*dto.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice status")
		}
		statusChangedToPaid = status == enums.InvoiceStatusPaid && invoice.Status != enums.InvoiceStatusPaid
		invoice.Status = status
	}
	if dto.Number != nil {
		number := strings.TrimSpace(*dto.Number)
		if number == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice number cannot be empty")
		}
		invoice.Number = number
	}
	if dto.CustomerName != nil {
		invoice.CustomerName = strings.TrimSpace(*dto.CustomerName)
	}
	if dto.CustomerEmail != nil {
		invoice.CustomerEmail = strings.ToLower(strings.TrimSpace(*dto.CustomerEmail))
	}
	if dto.Date != nil {
		invoice.Date = dto.Date.UTC()
	}
	if dto.Items != nil {
		invoice.Items, invoice.Total = buildItems(dto.Items)
		for i := range invoice.Items {
			invoice.Items[i].InvoiceID = invoice.ID
		}
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update invoice")
	}

	s.propagateRollup(ctx, invoice, statusChangedToPaid)
	return FromModel(invoice), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	invoice, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete invoice")
	}

	s.propagateRollup(ctx, invoice, false)
	return nil
}

// propagateRollup refreshes the linked customer's denormalized totals in a
// second, non-transactional write. A failure here leaves the rollup stale
// until the next write or a reconcile pass; the invoice operation itself has
// already succeeded, so the error is only logged.
func (s *service) propagateRollup(ctx context.Context, invoice *models.Invoice, recordPayment bool) {
	if invoice.CustomerID == nil {
		return
	}
	customerID := *invoice.CustomerID

	totals, err := s.rollups.ComputeRollup(ctx, customerID)
	if err == nil {
		err = s.rollups.WriteRollup(ctx, customerID, totals)
	}
	if err == nil && recordPayment {
		err = s.rollups.AppendPaymentRecord(ctx, &models.PaymentRecord{
			CustomerID: customerID,
			InvoiceID:  invoice.ID,
			Amount:     invoice.Total,
			Status:     invoice.Status,
			Date:       invoice.Date,
		})
	}

	if err != nil && s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"invoice_id":  invoice.ID.String(),
			"customer_id": customerID.String(),
		})
		s.logg.Error(logCtx, "invoices.rollup.stale", err)
	}
}

func (s *service) find(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup invoice")
	}
	return invoice, nil
}
