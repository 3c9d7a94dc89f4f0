package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/logger"
)

// timeNowUTC is swapped out in tests to freeze the aggregation clock.
var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Service is the analytics façade. Every call recomputes from scratch over
// the tenant's full collections; nothing is cached between invocations.
type Service struct {
	source RecordSource
	logg   *logger.Logger
}

// NewService constructs the façade over the provided record source.
func NewService(source RecordSource, logg *logger.Logger) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("record source is required")
	}
	return &Service{source: source, logg: logg}, nil
}

// DashboardAnalytics fetches both collections concurrently, drops malformed
// records, and assembles the full dashboard result. A source failure surfaces
// as a dependency error rather than an empty result, so callers can tell "no
// data" apart from "could not load".
func (s *Service) DashboardAnalytics(ctx context.Context, tenantID string, dateRange enums.DateRange) (*DashboardAnalytics, error) {
	if !dateRange.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported date range").WithDetails(map[string]any{"date_range": string(dateRange)})
	}

	var (
		invoices  []InvoiceRecord
		customers []CustomerRecord
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		fetched, err := s.source.FetchInvoices(groupCtx, tenantID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record source unavailable").WithDetails(map[string]any{"collection": "invoices"})
		}
		invoices = fetched
		return nil
	})
	group.Go(func() error {
		fetched, err := s.source.FetchCustomers(groupCtx, tenantID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record source unavailable").WithDetails(map[string]any{"collection": "customers"})
		}
		customers = fetched
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	validInvoices, skippedInvoices := sanitizeInvoices(invoices)
	validCustomers, skippedCustomers := sanitizeCustomers(customers)

	if s.logg != nil && (skippedInvoices > 0 || skippedCustomers > 0) {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"tenant_id":         tenantID,
			"skipped_invoices":  skippedInvoices,
			"skipped_customers": skippedCustomers,
		})
		s.logg.Warn(logCtx, "analytics.records.skipped")
	}

	now := timeNowUTC()
	periods := Periods(dateRange, now)
	revenue := ComputeRevenueMetrics(validInvoices, periods)

	return &DashboardAnalytics{
		DateRange:        dateRange,
		Periods:          periods,
		Overview:         ComputeOverview(validInvoices, validCustomers, now),
		Revenue:          revenue,
		Customers:        ComputeCustomerMetrics(validCustomers, validInvoices, now),
		Products:         ComputeProductMetrics(validInvoices),
		Forecast:         Forecast(revenue.Points),
		SkippedInvoices:  skippedInvoices,
		SkippedCustomers: skippedCustomers,
	}, nil
}

// sanitizeInvoices drops records the aggregators cannot safely fold: an
// unparseable date or a broken monetary amount excludes the record instead of
// aborting the call.
func sanitizeInvoices(invoices []InvoiceRecord) ([]InvoiceRecord, int) {
	valid := make([]InvoiceRecord, 0, len(invoices))
	skipped := 0
	for _, inv := range invoices {
		if _, ok := NormalizeDate(inv.Date); !ok {
			skipped++
			continue
		}
		if math.IsNaN(inv.Total) || math.IsInf(inv.Total, 0) || inv.Total < 0 {
			skipped++
			continue
		}
		valid = append(valid, inv)
	}
	return valid, skipped
}

func sanitizeCustomers(customers []CustomerRecord) ([]CustomerRecord, int) {
	valid := make([]CustomerRecord, 0, len(customers))
	skipped := 0
	for _, c := range customers {
		if c.ID == "" && c.Name == "" && c.Email == "" {
			skipped++
			continue
		}
		valid = append(valid, c)
	}
	return valid, skipped
}
