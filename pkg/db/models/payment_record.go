package models

import (
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecord is an append-only payment-history entry on a customer.
type PaymentRecord struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	InvoiceID  uuid.UUID           `gorm:"column:invoice_id;type:uuid;not null"`
	Amount     decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null"`
	Status     enums.InvoiceStatus `gorm:"column:status;not null"`
	Date       time.Time           `gorm:"column:date;not null"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
}
