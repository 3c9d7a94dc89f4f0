package analytics

import (
	"testing"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
)

func TestPeriodsThreeMonthWindow(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 30, 0, 0, time.UTC)
	buckets := Periods(enums.DateRange3Months, now)

	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}

	wantLabels := []string{"Dec 2023", "Jan 2024", "Feb 2024"}
	for i, want := range wantLabels {
		if buckets[i].Label != want {
			t.Fatalf("bucket %d: expected label %q, got %q", i, want, buckets[i].Label)
		}
	}

	first := buckets[0]
	if !first.Start.Equal(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first bucket start %v", first.Start)
	}
	if first.End.Month() != time.December || first.End.Day() != 31 {
		t.Fatalf("unexpected first bucket end %v", first.End)
	}

	last := buckets[len(buckets)-1]
	if !last.Contains(now) {
		t.Fatalf("expected last bucket %q to contain now", last.Label)
	}

	for i := 1; i < len(buckets); i++ {
		if !buckets[i].Start.After(buckets[i-1].End) {
			t.Fatalf("buckets %d and %d overlap", i-1, i)
		}
	}
}

func TestPeriodsBucketCounts(t *testing.T) {
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	cases := map[enums.DateRange]int{
		enums.DateRange1Month:   1,
		enums.DateRange3Months:  3,
		enums.DateRange6Months:  6,
		enums.DateRange12Months: 12,
	}
	for dateRange, want := range cases {
		if got := len(Periods(dateRange, now)); got != want {
			t.Fatalf("%s: expected %d buckets, got %d", dateRange, want, got)
		}
	}

	if got := Periods(enums.DateRange("bogus"), now); got != nil {
		t.Fatalf("expected nil buckets for invalid range, got %v", got)
	}
}

func TestPeriodsLabelsUniqueAcrossYearBoundary(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	buckets := Periods(enums.DateRange12Months, now)

	seen := map[string]bool{}
	for _, bucket := range buckets {
		if seen[bucket.Label] {
			t.Fatalf("duplicate label %q", bucket.Label)
		}
		seen[bucket.Label] = true
	}
}

func TestPeriodContainsEndpointsInclusive(t *testing.T) {
	now := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	bucket := Periods(enums.DateRange1Month, now)[0]

	if !bucket.Contains(bucket.Start) {
		t.Fatal("expected start to be inside the bucket")
	}
	if !bucket.Contains(bucket.End) {
		t.Fatal("expected end to be inside the bucket")
	}
	if bucket.Contains(bucket.Start.Add(-time.Nanosecond)) {
		t.Fatal("expected instant before start to be outside")
	}
}
