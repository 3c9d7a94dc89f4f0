package analytics

import "math"

// Forecast fits an ordinary least-squares line through the monthly revenue
// series and projects it forward. Fewer than two points cannot support a fit
// and yield the all-zero stable result.
func Forecast(points []RevenuePoint) ForecastResult {
	if len(points) < 2 {
		return ForecastResult{Trend: TrendStable}
	}

	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Revenue
		sumXY += x * p.Revenue
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	var slope float64
	if denominator != 0 {
		slope = (n*sumXY - sumX*sumY) / denominator
	}
	intercept := (sumY - slope*sumX) / n

	result := ForecastResult{Trend: TrendStable}
	switch {
	case slope > 0:
		result.Trend = TrendGrowing
	case slope < 0:
		result.Trend = TrendDeclining
	}

	// Revenue forecasts never go negative.
	result.NextMonth = math.Max(0, slope*n+intercept)
	var quarter float64
	for k := 0; k < 3; k++ {
		projected := math.Max(0, slope*(n+float64(k))+intercept)
		result.Next3Months[k] = projected
		quarter += projected
	}
	result.Yearly = quarter * 4
	result.Confidence = confidence(points)
	return result
}

// confidence scores how steady the series is: 100 minus the coefficient of
// variation scaled to percent, clamped to [0, 100]. A zero-mean series scores
// zero.
func confidence(points []RevenuePoint) float64 {
	n := float64(len(points))
	var sum float64
	for _, p := range points {
		sum += p.Revenue
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, p := range points {
		deviation := p.Revenue - mean
		variance += deviation * deviation
	}
	variance /= n

	cv := math.Sqrt(variance) / mean
	return math.Min(100, math.Max(0, 100-cv*100))
}
