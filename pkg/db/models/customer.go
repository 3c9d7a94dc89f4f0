package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds the buyer identity plus denormalized invoice rollups. The
// rollup columns are maintained by the invoice service in a separate write
// from the invoice row, so they can lag behind after a crash; analytics
// recomputes them from the invoice table and the reconcile pass rewrites
// drifted rows.
type Customer struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Name    string    `gorm:"column:name;not null"`
	Email   string    `gorm:"column:email"`
	Phone   string    `gorm:"column:phone"`
	Address string    `gorm:"column:address"`

	TotalInvoices   int             `gorm:"column:total_invoices;not null;default:0"`
	TotalRevenue    decimal.Decimal `gorm:"column:total_revenue;type:numeric(14,2);not null;default:0"`
	PendingAmount   decimal.Decimal `gorm:"column:pending_amount;type:numeric(14,2);not null;default:0"`
	PaidAmount      decimal.Decimal `gorm:"column:paid_amount;type:numeric(14,2);not null;default:0"`
	LastInvoiceDate *time.Time      `gorm:"column:last_invoice_date"`

	PaymentHistory []PaymentRecord `gorm:"foreignKey:CustomerID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
