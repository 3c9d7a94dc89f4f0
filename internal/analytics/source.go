package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
)

// DBSource is the GORM-backed record source. It loads the tenant's full
// invoice and customer collections; the engine does the rest in memory.
type DBSource struct {
	db *gorm.DB
}

// NewDBSource binds a record source to the shared GORM connection.
func NewDBSource(conn *gorm.DB) (*DBSource, error) {
	if conn == nil {
		return nil, fmt.Errorf("db connection is required")
	}
	return &DBSource{db: conn}, nil
}

func (s *DBSource) FetchInvoices(ctx context.Context, tenantID string) ([]InvoiceRecord, error) {
	userID, err := parseTenantID(tenantID)
	if err != nil {
		return nil, err
	}

	var rows []models.Invoice
	if err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]InvoiceRecord, 0, len(rows))
	for _, row := range rows {
		record := InvoiceRecord{
			ID:            row.ID.String(),
			Number:        row.Number,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			Status:        row.Status,
			Total:         row.Total.InexactFloat64(),
			Date:          row.Date,
		}
		if row.CustomerID != nil {
			record.CustomerID = row.CustomerID.String()
		}
		for _, item := range row.Items {
			record.Items = append(record.Items, InvoiceItemRecord{
				ProductID:   item.ProductID,
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price.InexactFloat64(),
			})
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *DBSource) FetchCustomers(ctx context.Context, tenantID string) ([]CustomerRecord, error) {
	userID, err := parseTenantID(tenantID)
	if err != nil {
		return nil, err
	}

	var rows []models.Customer
	if err := s.db.WithContext(ctx).
		Preload("PaymentHistory").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]CustomerRecord, 0, len(rows))
	for _, row := range rows {
		record := CustomerRecord{
			ID:            row.ID.String(),
			Name:          row.Name,
			Email:         row.Email,
			CreatedAt:     row.CreatedAt,
			TotalInvoices: row.TotalInvoices,
			TotalRevenue:  row.TotalRevenue.InexactFloat64(),
			PendingAmount: row.PendingAmount.InexactFloat64(),
			PaidAmount:    row.PaidAmount.InexactFloat64(),
		}
		if row.LastInvoiceDate != nil {
			record.LastInvoiceDate = *row.LastInvoiceDate
		}
		for _, payment := range row.PaymentHistory {
			record.PaymentHistory = append(record.PaymentHistory, PaymentEntry{
				InvoiceID: payment.InvoiceID.String(),
				Amount:    payment.Amount.InexactFloat64(),
				Status:    payment.Status,
				Date:      payment.Date,
			})
		}
		records = append(records, record)
	}
	return records, nil
}

func parseTenantID(tenantID string) (uuid.UUID, error) {
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id must be a UUID")
	}
	return id, nil
}
