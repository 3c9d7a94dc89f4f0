package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
)

// InvoiceDTO is the transport shape of an invoice with its lines.
type InvoiceDTO struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	Status        enums.InvoiceStatus `json:"status"`
	Total         float64             `json:"total"`
	Date          time.Time           `json:"date"`
	Items         []ItemDTO           `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ItemDTO is one billed line.
type ItemDTO struct {
	ProductID   string  `json:"product_id,omitempty"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	LineTotal   float64 `json:"line_total"`
}

// ItemInput is the caller-supplied line; the line total and invoice total are
// always recomputed server side.
type ItemInput struct {
	ProductID   string  `json:"product_id" validate:"omitempty,max=100"`
	Description string  `json:"description" validate:"required,min=1,max=300"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// CreateInvoiceDTO holds the fields callers may set on a new invoice.
// CustomerID is optional; imported invoices may only carry free-text
// identity.
type CreateInvoiceDTO struct {
	Number        string      `json:"number" validate:"required,min=1,max=50"`
	CustomerID    *uuid.UUID  `json:"customer_id"`
	CustomerName  string      `json:"customer_name" validate:"required_without=CustomerID,max=200"`
	CustomerEmail string      `json:"customer_email" validate:"omitempty,email"`
	Status        string      `json:"status" validate:"required,oneof=paid pending"`
	Date          time.Time   `json:"date" validate:"required"`
	Items         []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceDTO carries a partial update; nil fields stay untouched.
// Replacing items rewrites the whole line set.
type UpdateInvoiceDTO struct {
	Number        *string     `json:"number" validate:"omitempty,min=1,max=50"`
	CustomerName  *string     `json:"customer_name" validate:"omitempty,max=200"`
	CustomerEmail *string     `json:"customer_email" validate:"omitempty,email"`
	Status        *string     `json:"status" validate:"omitempty,oneof=paid pending"`
	Date          *time.Time  `json:"date"`
	Items         []ItemInput `json:"items" validate:"omitempty,min=1,dive"`
}

// Page is one cursor page of invoices.
type Page struct {
	Invoices   []InvoiceDTO `json:"invoices"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func FromModel(inv *models.Invoice) *InvoiceDTO {
	if inv == nil {
		return nil
	}
	dto := &InvoiceDTO{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		Status:        inv.Status,
		Total:         inv.Total.InexactFloat64(),
		Date:          inv.Date,
		Items:         make([]ItemDTO, 0, len(inv.Items)),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	for _, item := range inv.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
			LineTotal:   item.LineTotal().InexactFloat64(),
		})
	}
	return dto
}

// buildItems converts caller input into models with stable positions and
// returns the recomputed invoice total.
func buildItems(inputs []ItemInput) ([]models.InvoiceItem, decimal.Decimal) {
	items := make([]models.InvoiceItem, 0, len(inputs))
	total := decimal.Zero
	for i, input := range inputs {
		item := models.InvoiceItem{
			Position:    i,
			ProductID:   input.ProductID,
			Description: input.Description,
			Quantity:    input.Quantity,
			Price:       decimal.NewFromFloat(input.Price),
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}
	return items, total
}
