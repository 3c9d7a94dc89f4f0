package analytics

import (
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
)

const periodLabelLayout = "Jan 2006"

// Periods expands a date range into calendar-month buckets, oldest first.
// The final bucket always contains now. Labels are unique because the range
// never exceeds twelve months.
func Periods(dateRange enums.DateRange, now time.Time) []PeriodBucket {
	n := dateRange.Months()
	if n <= 0 {
		return nil
	}

	now = now.UTC()
	buckets := make([]PeriodBucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		buckets = append(buckets, PeriodBucket{
			Label: start.Format(periodLabelLayout),
			Start: start,
			End:   end,
		})
	}
	return buckets
}

// Contains reports whether the instant falls inside the bucket. Both
// endpoints are inclusive.
func (b PeriodBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}
