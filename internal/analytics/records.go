package analytics

import (
	"context"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
)

// RecordSource supplies the flat collections the aggregators fold over. The
// engine never queries or mutates the backing store; it always reduces the
// full in-memory collection for one tenant.
type RecordSource interface {
	FetchInvoices(ctx context.Context, tenantID string) ([]InvoiceRecord, error)
	FetchCustomers(ctx context.Context, tenantID string) ([]CustomerRecord, error)
}

// InvoiceRecord is the engine's read-only view of an invoice. Date is kept
// loosely typed because source systems deliver it in several shapes; every
// comparison goes through NormalizeDate.
type InvoiceRecord struct {
	ID            string
	Number        string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	Status        enums.InvoiceStatus
	Total         float64
	Date          any
	Items         []InvoiceItemRecord
}

// InvoiceItemRecord is one billed line inside an invoice.
type InvoiceItemRecord struct {
	ProductID   string
	Description string
	Quantity    int
	Price       float64
}

// CustomerRecord carries the customer identity plus the denormalized rollups
// maintained outside the engine. The rollups are a best-effort cache; the
// aggregators recompute revenue and counts from the invoice collection.
type CustomerRecord struct {
	ID              string
	Name            string
	Email           string
	CreatedAt       any
	TotalInvoices   int
	TotalRevenue    float64
	PendingAmount   float64
	PaidAmount      float64
	LastInvoiceDate any
	PaymentHistory  []PaymentEntry
}

// PaymentEntry is one append-only payment-history item on a customer.
type PaymentEntry struct {
	InvoiceID string
	Amount    float64
	Status    enums.InvoiceStatus
	Date      any
}

// PeriodBucket is one calendar month of the requested range. Start and End
// are both inclusive for membership tests.
type PeriodBucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RevenuePoint is the per-month revenue rollup.
type RevenuePoint struct {
	Period         string  `json:"period"`
	Revenue        float64 `json:"revenue"`
	InvoiceCount   int     `json:"invoice_count"`
	PaidRevenue    float64 `json:"paid_revenue"`
	PendingRevenue float64 `json:"pending_revenue"`
}

// RevenueMetrics bundles the monthly series with its derived trend figures.
type RevenueMetrics struct {
	Points      []RevenuePoint `json:"points"`
	Growth      float64        `json:"growth"`
	Seasonality []float64      `json:"seasonality"`
}

// OverviewMetrics summarizes the whole invoice collection. TotalRevenue sums
// every status, unlike the per-customer paid-only rollup.
type OverviewMetrics struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalInvoices       int     `json:"total_invoices"`
	PaidInvoices        int     `json:"paid_invoices"`
	PendingInvoices     int     `json:"pending_invoices"`
	OverdueInvoices     int     `json:"overdue_invoices"`
	TotalCustomers      int     `json:"total_customers"`
	CollectionRate      float64 `json:"collection_rate"`
	AverageInvoiceValue float64 `json:"average_invoice_value"`
}

// CustomerAnalytic is one customer enriched with recomputed invoice figures.
type CustomerAnalytic struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	InvoiceCount        int       `json:"invoice_count"`
	TotalRevenue        float64   `json:"total_revenue"`
	AverageInvoiceValue float64   `json:"average_invoice_value"`
	LastInvoiceDate     time.Time `json:"last_invoice_date"`
	PaymentScore        float64   `json:"payment_score"`
}

// Segment is one revenue band of the customer population.
type Segment struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CustomerSegments partitions customers by recomputed total revenue.
type CustomerSegments struct {
	High   Segment `json:"high"`
	Medium Segment `json:"medium"`
	Low    Segment `json:"low"`
}

// CustomerMetrics is the customer-side aggregate output.
type CustomerMetrics struct {
	TotalCustomers int                `json:"total_customers"`
	TopCustomers   []CustomerAnalytic `json:"top_customers"`
	Segments       CustomerSegments   `json:"segments"`
	RetentionRate  float64            `json:"retention_rate"`
	ChurnRate      float64            `json:"churn_rate"`
}

// ProductStat is one product group after exploding every invoice's items.
type ProductStat struct {
	Key           string  `json:"key"`
	Name          string  `json:"name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	AveragePrice  float64 `json:"average_price"`
}

// ProductMetrics is the product-side aggregate output.
type ProductMetrics struct {
	TotalProducts int           `json:"total_products"`
	TopProducts   []ProductStat `json:"top_products"`
}

// Trend labels the direction of the fitted revenue line.
type Trend string

const (
	TrendGrowing   Trend = "growing"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// ForecastResult is the regression output. Yearly is a crude annualization,
// four times the next quarter, not a 12-month fit.
type ForecastResult struct {
	NextMonth   float64    `json:"next_month"`
	Next3Months [3]float64 `json:"next_3_months"`
	Yearly      float64    `json:"yearly"`
	Confidence  float64    `json:"confidence"`
	Trend       Trend      `json:"trend"`
}

// DashboardAnalytics is the assembled façade result. Skipped counts surface
// how many malformed records were excluded from the aggregation.
type DashboardAnalytics struct {
	DateRange        enums.DateRange `json:"date_range"`
	Periods          []PeriodBucket  `json:"periods"`
	Overview         OverviewMetrics `json:"overview"`
	Revenue          RevenueMetrics  `json:"revenue"`
	Customers        CustomerMetrics `json:"customers"`
	Products         ProductMetrics  `json:"products"`
	Forecast         ForecastResult  `json:"forecast"`
	SkippedInvoices  int             `json:"skipped_invoices"`
	SkippedCustomers int             `json:"skipped_customers"`
}
