package analytics

import "github.com/SakshamKandel/peakbrew-sub000/pkg/enums"

// ComputeRevenueByPeriod folds invoices into the supplied month buckets.
// Invoices with unparseable dates never match any bucket.
func ComputeRevenueByPeriod(invoices []InvoiceRecord, periods []PeriodBucket) []RevenuePoint {
	points := make([]RevenuePoint, len(periods))
	for i, bucket := range periods {
		points[i].Period = bucket.Label
	}

	for _, inv := range invoices {
		date, ok := NormalizeDate(inv.Date)
		if !ok {
			continue
		}
		for i, bucket := range periods {
			if !bucket.Contains(date) {
				continue
			}
			points[i].Revenue += inv.Total
			points[i].InvoiceCount++
			switch inv.Status {
			case enums.InvoiceStatusPaid:
				points[i].PaidRevenue += inv.Total
			case enums.InvoiceStatusPending:
				points[i].PendingRevenue += inv.Total
			}
			break
		}
	}
	return points
}

// RevenueGrowth is the percent change between the last two buckets, zero when
// the previous bucket had no revenue.
func RevenueGrowth(points []RevenuePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	prev := points[len(points)-2].Revenue
	curr := points[len(points)-1].Revenue
	if prev == 0 {
		return 0
	}
	return (curr - prev) / prev * 100
}

// SeasonalityIndices returns the month-over-month revenue ratio per bucket,
// aligned index-for-index with the input series so consumers can zip the two
// without offset bookkeeping. The first bucket has no predecessor and any
// bucket following a zero-revenue month reports the neutral index 1.
func SeasonalityIndices(points []RevenuePoint) []float64 {
	indices := make([]float64, len(points))
	for i := range points {
		if i == 0 || points[i-1].Revenue == 0 {
			indices[i] = 1
			continue
		}
		indices[i] = points[i].Revenue / points[i-1].Revenue
	}
	return indices
}

// ComputeRevenueMetrics bundles the bucketed series with its trend figures.
func ComputeRevenueMetrics(invoices []InvoiceRecord, periods []PeriodBucket) RevenueMetrics {
	points := ComputeRevenueByPeriod(invoices, periods)
	return RevenueMetrics{
		Points:      points,
		Growth:      RevenueGrowth(points),
		Seasonality: SeasonalityIndices(points),
	}
}
