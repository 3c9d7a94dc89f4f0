package invoices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/pagination"
)

// Repository exposes invoice persistence. Item rewrites run inside a
// transaction with the invoice row; customer rollups deliberately do not.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an invoices repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the invoice with its items.
func (r *Repository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// FindByID loads one invoice with items, scoped to the owning user.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ? AND id = ?", userID, id).
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns a cursor page ordered by invoice date descending.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("date < ? OR (date = ? AND id < ?)", cursor.SortTime, cursor.SortTime, cursor.ID)
	}

	var rows []models.Invoice
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update rewrites the invoice row and replaces its items atomically.
func (r *Repository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Save(invoice).Error
	})
}

// Delete removes the invoice and its items, scoped to the owning user.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&models.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
