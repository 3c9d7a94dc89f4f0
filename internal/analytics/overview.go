package analytics

import (
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
)

// overdueAfter is how long an unpaid invoice may age before it counts as
// overdue. Stored status values are never trusted for this; overdue is always
// derived from the invoice date.
const overdueAfter = 30 * 24 * time.Hour

// ComputeOverview reduces the full collections into headline figures.
// TotalRevenue sums every status, which intentionally differs from the
// paid-only customer rollups.
func ComputeOverview(invoices []InvoiceRecord, customers []CustomerRecord, now time.Time) OverviewMetrics {
	out := OverviewMetrics{
		TotalInvoices:  len(invoices),
		TotalCustomers: len(customers),
	}

	cutoff := now.UTC().Add(-overdueAfter)
	for _, inv := range invoices {
		out.TotalRevenue += inv.Total

		if inv.Status == enums.InvoiceStatusPaid {
			out.PaidInvoices++
			continue
		}

		if date, ok := NormalizeDate(inv.Date); ok && date.Before(cutoff) {
			out.OverdueInvoices++
		} else {
			out.PendingInvoices++
		}
	}

	if out.TotalInvoices > 0 {
		out.CollectionRate = float64(out.PaidInvoices) / float64(out.TotalInvoices) * 100
		out.AverageInvoiceValue = out.TotalRevenue / float64(out.TotalInvoices)
	}
	return out
}
