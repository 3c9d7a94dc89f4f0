package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/pagination"
)

// RollupTotals is the ground-truth aggregate recomputed from the invoice
// table, used both for propagation after invoice writes and for the
// reconcile pass.
type RollupTotals struct {
	TotalInvoices   int
	TotalRevenue    decimal.Decimal
	PendingAmount   decimal.Decimal
	PaidAmount      decimal.Decimal
	LastInvoiceDate *time.Time
}

// Repository exposes customer persistence plus rollup maintenance.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new customer.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// FindByID loads one customer scoped to the owning user.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Preload("PaymentHistory").
		Where("user_id = ? AND id = ?", userID, id).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns a cursor page ordered by created_at descending.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.SortTime, cursor.SortTime, cursor.ID)
	}

	var rows []models.Customer
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll loads every customer for the user, oldest first. Used by the
// reconcile pass.
func (r *Repository) ListAll(ctx context.Context, userID uuid.UUID) ([]models.Customer, error) {
	var rows []models.Customer
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the full customer row.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes the customer scoped to the owning user.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ComputeRollup folds the customer's invoices into fresh rollup totals.
// TotalRevenue counts paid invoices only, matching the stored rollup
// semantics rather than the all-status overview figure.
func (r *Repository) ComputeRollup(ctx context.Context, customerID uuid.UUID) (RollupTotals, error) {
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&invoices).Error; err != nil {
		return RollupTotals{}, err
	}

	totals := RollupTotals{
		TotalRevenue:  decimal.Zero,
		PendingAmount: decimal.Zero,
		PaidAmount:    decimal.Zero,
	}
	for _, inv := range invoices {
		totals.TotalInvoices++
		switch inv.Status {
		case enums.InvoiceStatusPaid:
			totals.PaidAmount = totals.PaidAmount.Add(inv.Total)
			totals.TotalRevenue = totals.TotalRevenue.Add(inv.Total)
		case enums.InvoiceStatusPending:
			totals.PendingAmount = totals.PendingAmount.Add(inv.Total)
		}
		if totals.LastInvoiceDate == nil || inv.Date.After(*totals.LastInvoiceDate) {
			date := inv.Date
			totals.LastInvoiceDate = &date
		}
	}
	return totals, nil
}

// WriteRollup overwrites the denormalized rollup columns.
func (r *Repository) WriteRollup(ctx context.Context, customerID uuid.UUID, totals RollupTotals) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		UpdateColumns(map[string]any{
			"total_invoices":    totals.TotalInvoices,
			"total_revenue":     totals.TotalRevenue,
			"pending_amount":    totals.PendingAmount,
			"paid_amount":       totals.PaidAmount,
			"last_invoice_date": totals.LastInvoiceDate,
		}).Error
}

// AppendPaymentRecord adds one payment-history entry.
func (r *Repository) AppendPaymentRecord(ctx context.Context, record *models.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
