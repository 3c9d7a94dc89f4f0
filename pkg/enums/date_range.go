package enums

import "fmt"

// DateRange selects how many trailing calendar months a dashboard query spans.
type DateRange string

const (
	DateRange1Month   DateRange = "1month"
	DateRange3Months  DateRange = "3months"
	DateRange6Months  DateRange = "6months"
	DateRange12Months DateRange = "12months"
)

var dateRangeMonths = map[DateRange]int{
	DateRange1Month:   1,
	DateRange3Months:  3,
	DateRange6Months:  6,
	DateRange12Months: 12,
}

// String implements fmt.Stringer.
func (r DateRange) String() string {
	return string(r)
}

// IsValid reports whether the value is a known DateRange.
func (r DateRange) IsValid() bool {
	_, ok := dateRangeMonths[r]
	return ok
}

// Months returns the number of calendar months the range covers.
func (r DateRange) Months() int {
	if n, ok := dateRangeMonths[r]; ok {
		return n
	}
	return 0
}

// ParseDateRange converts raw input into a DateRange.
func ParseDateRange(value string) (DateRange, error) {
	candidate := DateRange(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid date range %q", value)
}
