package analytics

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
)

// exportDateRange is the window exports always cover; a year of history is
// what the download surface renders.
const exportDateRange = enums.DateRange12Months

// Export renders the tenant's dashboard analytics as a pretty-printed JSON
// document or a two-section CSV.
func (s *Service) Export(ctx context.Context, tenantID string, format enums.ExportFormat) (string, error) {
	if !format.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported export format").WithDetails(map[string]any{"format": string(format)})
	}

	dashboard, err := s.DashboardAnalytics(ctx, tenantID, exportDateRange)
	if err != nil {
		return "", err
	}

	switch format {
	case enums.ExportFormatJSON:
		return exportJSON(dashboard)
	case enums.ExportFormatCSV:
		return exportCSV(dashboard)
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported export format")
}

func exportJSON(dashboard *DashboardAnalytics) (string, error) {
	payload, err := json.MarshalIndent(dashboard, "", "  ")
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode analytics export")
	}
	return string(payload), nil
}

// exportCSV writes the overview as Metric,Value rows, a blank separator
// line, then the monthly revenue table. encoding/csv handles quoting for
// values containing commas.
func exportCSV(dashboard *DashboardAnalytics) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Revenue", formatAmount(dashboard.Overview.TotalRevenue)},
		{"Total Invoices", strconv.Itoa(dashboard.Overview.TotalInvoices)},
		{"Paid Invoices", strconv.Itoa(dashboard.Overview.PaidInvoices)},
		{"Pending Invoices", strconv.Itoa(dashboard.Overview.PendingInvoices)},
		{"Overdue Invoices", strconv.Itoa(dashboard.Overview.OverdueInvoices)},
		{"Total Customers", strconv.Itoa(dashboard.Overview.TotalCustomers)},
		{"Collection Rate", formatAmount(dashboard.Overview.CollectionRate)},
		{"Average Invoice Value", formatAmount(dashboard.Overview.AverageInvoiceValue)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export row")
		}
	}

	// Blank separator line between the two tables.
	if err := w.Write([]string{""}); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export separator")
	}

	if err := w.Write([]string{"Month", "Revenue", "Invoice Count"}); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export header")
	}
	for _, point := range dashboard.Revenue.Points {
		row := []string{point.Period, formatAmount(point.Revenue), strconv.Itoa(point.InvoiceCount)}
		if err := w.Write(row); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush export")
	}
	return buf.String(), nil
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
