package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
)

func TestComputeRevenueByPeriod(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	periods := Periods(enums.DateRange3Months, now)

	invoices := []InvoiceRecord{
		{ID: "jan-paid", Status: enums.InvoiceStatusPaid, Total: 100, Date: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "feb-pending", Status: enums.InvoiceStatusPending, Total: 40, Date: time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "feb-paid", Status: enums.InvoiceStatusPaid, Total: 60, Date: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "mar-paid", Status: enums.InvoiceStatusPaid, Total: 200, Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "out-of-range", Status: enums.InvoiceStatusPaid, Total: 999, Date: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "bad-date", Status: enums.InvoiceStatusPaid, Total: 999, Date: "garbage"},
	}

	points := ComputeRevenueByPeriod(invoices, periods)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	if points[0].Revenue != 100 || points[0].InvoiceCount != 1 {
		t.Fatalf("unexpected january point %+v", points[0])
	}
	if points[1].Revenue != 100 || points[1].InvoiceCount != 2 {
		t.Fatalf("unexpected february point %+v", points[1])
	}
	if points[1].PaidRevenue != 60 || points[1].PendingRevenue != 40 {
		t.Fatalf("unexpected february status split %+v", points[1])
	}
	if points[2].Revenue != 200 {
		t.Fatalf("unexpected march point %+v", points[2])
	}
}

func TestRevenueGrowth(t *testing.T) {
	points := []RevenuePoint{{Revenue: 100}, {Revenue: 150}}
	if got := RevenueGrowth(points); got != 50 {
		t.Fatalf("expected growth 50, got %v", got)
	}

	if got := RevenueGrowth([]RevenuePoint{{Revenue: 0}, {Revenue: 100}}); got != 0 {
		t.Fatalf("expected zero growth over a zero baseline, got %v", got)
	}
	if got := RevenueGrowth([]RevenuePoint{{Revenue: 100}}); got != 0 {
		t.Fatalf("expected zero growth for a single point, got %v", got)
	}
}

func TestSeasonalityIndices(t *testing.T) {
	points := []RevenuePoint{{Revenue: 100}, {Revenue: 200}, {Revenue: 0}, {Revenue: 50}}
	indices := SeasonalityIndices(points)

	want := []float64{1, 2, 0, 1}
	if len(indices) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(indices))
	}
	for i := range want {
		if math.Abs(indices[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], indices[i])
		}
	}
}
