package models

import (
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a billed document. CustomerID is nullable because imported
// invoices may only carry the free-text name/email from the source system;
// analytics falls back to those correlation keys when the ID is absent.
type Invoice struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Number        string              `gorm:"column:number;not null"`
	CustomerID    *uuid.UUID          `gorm:"column:customer_id;type:uuid;index"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerEmail string              `gorm:"column:customer_email"`
	Status        enums.InvoiceStatus `gorm:"column:status;not null;default:'pending'"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(14,2);not null;default:0"`
	Date          time.Time           `gorm:"column:date;not null;index"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// InvoiceItem is one billed line. Position keeps the source ordering stable.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null;index"`
	Position    int             `gorm:"column:position;not null"`
	ProductID   string          `gorm:"column:product_id"`
	Description string          `gorm:"column:description;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
}

// LineTotal returns quantity times unit price.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
