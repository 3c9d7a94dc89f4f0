package analytics

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
)

func exportFixtureService(t *testing.T) *Service {
	t.Helper()
	now := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	frozenClock(t, now)

	source := &fakeSource{
		invoices: []InvoiceRecord{
			{ID: "i1", CustomerID: "c1", Status: enums.InvoiceStatusPaid, Total: 1500, Date: now.AddDate(0, 0, -2)},
			{ID: "i2", CustomerID: "c1", Status: enums.InvoiceStatusPending, Total: 500, Date: now.AddDate(0, -2, 0)},
		},
		customers: []CustomerRecord{{ID: "c1", Name: "Thamel Beers, Pvt Ltd"}},
	}
	svc, err := NewService(source, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestExportJSON(t *testing.T) {
	svc := exportFixtureService(t)

	out, err := svc.Export(context.Background(), "tenant", enums.ExportFormatJSON)
	if err != nil {
		t.Fatalf("export json: %v", err)
	}

	var decoded DashboardAnalytics
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.Overview.TotalRevenue != 2000 {
		t.Fatalf("unexpected exported revenue %v", decoded.Overview.TotalRevenue)
	}
	if !strings.Contains(out, "\n  ") {
		t.Fatal("expected pretty-printed JSON")
	}
}

func TestExportCSVShape(t *testing.T) {
	svc := exportFixtureService(t)

	out, err := svc.Export(context.Background(), "tenant", enums.ExportFormatCSV)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Metric,Value" {
		t.Fatalf("unexpected header %q", lines[0])
	}

	var separatorIdx int
	for i, line := range lines {
		if line == "" {
			separatorIdx = i
			break
		}
	}
	if separatorIdx == 0 {
		t.Fatal("expected a blank separator line between the tables")
	}
	if lines[separatorIdx+1] != "Month,Revenue,Invoice Count" {
		t.Fatalf("unexpected revenue header %q", lines[separatorIdx+1])
	}
	// 12-month export: header plus twelve month rows.
	if got := len(lines) - separatorIdx - 2; got != 12 {
		t.Fatalf("expected 12 revenue rows, got %d", got)
	}
	if !strings.Contains(out, "Total Revenue,2000.00") {
		t.Fatalf("expected total revenue row, got:\n%s", out)
	}
}

func TestExportCSVQuotesCommaValues(t *testing.T) {
	svc := exportFixtureService(t)

	out, err := svc.Export(context.Background(), "tenant", enums.ExportFormatCSV)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	// None of the fixed metric labels carry commas, but the writer must keep
	// each row at exactly two columns regardless of content.
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" || strings.HasPrefix(line, "Month,") {
			break
		}
		if strings.Count(line, ",") != 1 {
			t.Fatalf("metric row has unexpected column count: %q", line)
		}
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := exportFixtureService(t)

	_, err := svc.Export(context.Background(), "tenant", enums.ExportFormat("xml"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
