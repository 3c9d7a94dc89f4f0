package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
)

// CustomerDTO is the transport shape including the denormalized rollups.
type CustomerDTO struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	TotalInvoices   int        `json:"total_invoices"`
	TotalRevenue    float64    `json:"total_revenue"`
	PendingAmount   float64    `json:"pending_amount"`
	PaidAmount      float64    `json:"paid_amount"`
	LastInvoiceDate *time.Time `json:"last_invoice_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateCustomerDTO holds the fields callers may set on a new customer.
type CreateCustomerDTO struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// UpdateCustomerDTO carries a partial update; nil fields stay untouched.
type UpdateCustomerDTO struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// Page is one cursor page of customers.
type Page struct {
	Customers  []CustomerDTO `json:"customers"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ReconcileReport summarizes a rollup reconciliation pass.
type ReconcileReport struct {
	Checked  int `json:"checked"`
	Repaired int `json:"repaired"`
}

func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		TotalInvoices:   c.TotalInvoices,
		TotalRevenue:    c.TotalRevenue.InexactFloat64(),
		PendingAmount:   c.PendingAmount.InexactFloat64(),
		PaidAmount:      c.PaidAmount.InexactFloat64(),
		LastInvoiceDate: c.LastInvoiceDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (d CreateCustomerDTO) ToModel(userID uuid.UUID) *models.Customer {
	return &models.Customer{
		UserID:  userID,
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Address: d.Address,
	}
}
