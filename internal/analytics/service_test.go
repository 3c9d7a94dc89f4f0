package analytics

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
)

type fakeSource struct {
	invoices     []InvoiceRecord
	customers    []CustomerRecord
	invoiceErr   error
	customerErr  error
	invoiceCalls int
}

func (f *fakeSource) FetchInvoices(ctx context.Context, tenantID string) ([]InvoiceRecord, error) {
	f.invoiceCalls++
	if f.invoiceErr != nil {
		return nil, f.invoiceErr
	}
	return f.invoices, nil
}

func (f *fakeSource) FetchCustomers(ctx context.Context, tenantID string) ([]CustomerRecord, error) {
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	return f.customers, nil
}

func frozenClock(t *testing.T, at time.Time) {
	t.Helper()
	previous := timeNowUTC
	timeNowUTC = func() time.Time { return at }
	t.Cleanup(func() { timeNowUTC = previous })
}

func TestDashboardAnalyticsIdempotent(t *testing.T) {
	now := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	frozenClock(t, now)

	source := &fakeSource{
		invoices: []InvoiceRecord{
			{ID: "i1", CustomerID: "c1", Status: enums.InvoiceStatusPaid, Total: 1200, Date: now.AddDate(0, 0, -3),
				Items: []InvoiceItemRecord{{Description: "Pilsner", Quantity: 10, Price: 120}}},
			{ID: "i2", CustomerID: "c1", Status: enums.InvoiceStatusPending, Total: 400, Date: now.AddDate(0, -1, 0)},
		},
		customers: []CustomerRecord{{ID: "c1", Name: "Himalayan Taps"}},
	}
	svc, err := NewService(source, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	first, err := svc.DashboardAnalytics(context.Background(), "tenant", enums.DateRange3Months)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.DashboardAnalytics(context.Background(), "tenant", enums.DateRange3Months)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical results for an unchanged source")
	}
}

func TestDashboardAnalyticsSkipsMalformedRecords(t *testing.T) {
	now := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	frozenClock(t, now)

	source := &fakeSource{
		invoices: []InvoiceRecord{
			{ID: "good", Status: enums.InvoiceStatusPaid, Total: 100, Date: now.AddDate(0, 0, -1)},
			{ID: "bad-date", Status: enums.InvoiceStatusPaid, Total: 100, Date: "not a date"},
			{ID: "bad-total", Status: enums.InvoiceStatusPaid, Total: -5, Date: now},
		},
		customers: []CustomerRecord{
			{ID: "c1", Name: "Valid"},
			{}, // no identity at all
		},
	}
	svc, err := NewService(source, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.DashboardAnalytics(context.Background(), "tenant", enums.DateRange1Month)
	if err != nil {
		t.Fatalf("dashboard analytics: %v", err)
	}

	if got.SkippedInvoices != 2 {
		t.Fatalf("expected 2 skipped invoices, got %d", got.SkippedInvoices)
	}
	if got.SkippedCustomers != 1 {
		t.Fatalf("expected 1 skipped customer, got %d", got.SkippedCustomers)
	}
	if got.Overview.TotalInvoices != 1 || got.Overview.TotalRevenue != 100 {
		t.Fatalf("aggregation should run over valid records only, got %+v", got.Overview)
	}
}

func TestDashboardAnalyticsSourceUnavailable(t *testing.T) {
	source := &fakeSource{invoiceErr: errors.New("connection refused")}
	svc, err := NewService(source, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.DashboardAnalytics(context.Background(), "tenant", enums.DateRange3Months)
	if err == nil {
		t.Fatal("expected error when the record source is down")
	}
	if got != nil {
		t.Fatal("a failed fetch must not return a partial result")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestDashboardAnalyticsRejectsInvalidRange(t *testing.T) {
	svc, err := NewService(&fakeSource{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.DashboardAnalytics(context.Background(), "tenant", enums.DateRange("forever"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewServiceRequiresSource(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
