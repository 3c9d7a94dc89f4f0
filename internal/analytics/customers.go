package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
)

const (
	segmentHighThreshold = 5000.0
	segmentLowThreshold  = 1000.0

	retentionWindowMonths = 3
	churnWindowMonths     = 6
	topCustomerLimit      = 10
)

// invoiceIndex buckets invoices under exactly one correlation key each, so a
// customer matched by several strategies never double counts an invoice. The
// key priority is stable ID, then normalized email, then normalized name.
type invoiceIndex struct {
	byID    map[string][]InvoiceRecord
	byEmail map[string][]InvoiceRecord
	byName  map[string][]InvoiceRecord
}

func indexInvoices(invoices []InvoiceRecord) invoiceIndex {
	idx := invoiceIndex{
		byID:    map[string][]InvoiceRecord{},
		byEmail: map[string][]InvoiceRecord{},
		byName:  map[string][]InvoiceRecord{},
	}
	for _, inv := range invoices {
		if inv.CustomerID != "" {
			idx.byID[inv.CustomerID] = append(idx.byID[inv.CustomerID], inv)
			continue
		}
		if email := normalizeKey(inv.CustomerEmail); email != "" {
			idx.byEmail[email] = append(idx.byEmail[email], inv)
			continue
		}
		if name := normalizeKey(inv.CustomerName); name != "" {
			idx.byName[name] = append(idx.byName[name], inv)
		}
	}
	return idx
}

func (idx invoiceIndex) matches(c CustomerRecord) []InvoiceRecord {
	var matched []InvoiceRecord
	if c.ID != "" {
		matched = append(matched, idx.byID[c.ID]...)
	}
	if email := normalizeKey(c.Email); email != "" {
		matched = append(matched, idx.byEmail[email]...)
	}
	if name := normalizeKey(c.Name); name != "" {
		matched = append(matched, idx.byName[name]...)
	}
	return matched
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ComputeCustomerMetrics correlates customers to invoices and derives the
// ranking, segmentation, retention, and churn figures. Revenue is recomputed
// from the invoice collection; the stored rollups are not trusted here.
func ComputeCustomerMetrics(customers []CustomerRecord, invoices []InvoiceRecord, now time.Time) CustomerMetrics {
	out := CustomerMetrics{TotalCustomers: len(customers)}
	if len(customers) == 0 {
		out.TopCustomers = []CustomerAnalytic{}
		return out
	}

	idx := indexInvoices(invoices)
	now = now.UTC()
	retentionCutoff := now.AddDate(0, -retentionWindowMonths, 0)
	churnCutoff := now.AddDate(0, -churnWindowMonths, 0)

	analytics := make([]CustomerAnalytic, 0, len(customers))
	var retained, churned int

	for _, c := range customers {
		matched := idx.matches(c)

		entry := CustomerAnalytic{
			ID:    c.ID,
			Name:  c.Name,
			Email: c.Email,
			// No invoices means no late payments on record.
			PaymentScore: 100,
		}

		var paid int
		for _, inv := range matched {
			entry.InvoiceCount++
			entry.TotalRevenue += inv.Total
			if inv.Status == enums.InvoiceStatusPaid {
				paid++
			}
			if date, ok := NormalizeDate(inv.Date); ok && date.After(entry.LastInvoiceDate) {
				entry.LastInvoiceDate = date
			}
		}

		if entry.InvoiceCount > 0 {
			entry.AverageInvoiceValue = entry.TotalRevenue / float64(entry.InvoiceCount)
			entry.PaymentScore = float64(paid) / float64(entry.InvoiceCount) * 100
		}

		if !entry.LastInvoiceDate.IsZero() && !entry.LastInvoiceDate.Before(retentionCutoff) {
			retained++
		}
		if entry.LastInvoiceDate.IsZero() || entry.LastInvoiceDate.Before(churnCutoff) {
			churned++
		}

		analytics = append(analytics, entry)
	}

	population := float64(len(customers))
	out.RetentionRate = float64(retained) / population * 100
	out.ChurnRate = float64(churned) / population * 100
	out.Segments = segmentCustomers(analytics)
	out.TopCustomers = topCustomers(analytics)
	return out
}

func segmentCustomers(analytics []CustomerAnalytic) CustomerSegments {
	var segments CustomerSegments
	for _, entry := range analytics {
		switch {
		case entry.TotalRevenue > segmentHighThreshold:
			segments.High.Count++
		case entry.TotalRevenue > segmentLowThreshold:
			segments.Medium.Count++
		default:
			segments.Low.Count++
		}
	}
	if population := len(analytics); population > 0 {
		segments.High.Percentage = float64(segments.High.Count) / float64(population) * 100
		segments.Medium.Percentage = float64(segments.Medium.Count) / float64(population) * 100
		segments.Low.Percentage = float64(segments.Low.Count) / float64(population) * 100
	}
	return segments
}

func topCustomers(analytics []CustomerAnalytic) []CustomerAnalytic {
	ranked := make([]CustomerAnalytic, len(analytics))
	copy(ranked, analytics)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	if len(ranked) > topCustomerLimit {
		ranked = ranked[:topCustomerLimit]
	}
	return ranked
}
