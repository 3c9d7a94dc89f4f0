package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/logger"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/pagination"
)

// Service defines the behavior needed by the customers controller.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateCustomerDTO) (*CustomerDTO, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error)
	Update(ctx context.Context, userID, id uuid.UUID, dto UpdateCustomerDTO) (*CustomerDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Reconcile(ctx context.Context, userID uuid.UUID) (*ReconcileReport, error)
}

type repository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Customer, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ComputeRollup(ctx context.Context, customerID uuid.UUID) (RollupTotals, error)
	WriteRollup(ctx context.Context, customerID uuid.UUID, totals RollupTotals) error
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService constructs a customers service with the provided dependencies.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateCustomerDTO) (*CustomerDTO, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	customer := dto.ToModel(userID)
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}
	return FromModel(customer), nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(customer), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, userID, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}

	page := &Page{Customers: make([]CustomerDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		page.Customers = append(page.Customers, *FromModel(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{SortTime: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, dto UpdateCustomerDTO) (*CustomerDTO, error) {
	customer, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be empty")
		}
		customer.Name = name
	}
	if dto.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*dto.Email))
	}
	if dto.Phone != nil {
		customer.Phone = strings.TrimSpace(*dto.Phone)
	}
	if dto.Address != nil {
		customer.Address = strings.TrimSpace(*dto.Address)
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer")
	}
	return FromModel(customer), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete customer")
	}
	return nil
}

// Reconcile recomputes every customer's rollups from the invoice table and
// rewrites rows that drifted. Rollup writes are not transactional with
// invoice writes, so drift after a crash is expected rather than exceptional.
// Individual failures are collected so one broken row does not stop the pass.
func (s *service) Reconcile(ctx context.Context, userID uuid.UUID) (*ReconcileReport, error) {
	rows, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}

	report := &ReconcileReport{}
	var failures error
	for i := range rows {
		customer := &rows[i]
		report.Checked++

		totals, err := s.repo.ComputeRollup(ctx, customer.ID)
		if err != nil {
			failures = multierr.Append(failures, fmt.Errorf("compute rollup for %s: %w", customer.ID, err))
			continue
		}
		if !rollupDrifted(customer, totals) {
			continue
		}

		if err := s.repo.WriteRollup(ctx, customer.ID, totals); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("write rollup for %s: %w", customer.ID, err))
			continue
		}
		report.Repaired++

		if s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"customer_id":    customer.ID.String(),
				"total_invoices": totals.TotalInvoices,
			})
			s.logg.Info(logCtx, "customers.rollup.repaired")
		}
	}

	if failures != nil {
		return report, pkgerrors.Wrap(pkgerrors.CodeInternal, failures, "reconcile incomplete")
	}
	return report, nil
}

func (s *service) find(ctx context.Context, userID, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}
	return customer, nil
}

func rollupDrifted(customer *models.Customer, totals RollupTotals) bool {
	if customer.TotalInvoices != totals.TotalInvoices {
		return true
	}
	if !customer.TotalRevenue.Equal(totals.TotalRevenue) ||
		!customer.PendingAmount.Equal(totals.PendingAmount) ||
		!customer.PaidAmount.Equal(totals.PaidAmount) {
		return true
	}
	switch {
	case customer.LastInvoiceDate == nil && totals.LastInvoiceDate == nil:
		return false
	case customer.LastInvoiceDate == nil || totals.LastInvoiceDate == nil:
		return true
	default:
		return !customer.LastInvoiceDate.Equal(*totals.LastInvoiceDate)
	}
}
