package analytics

import (
	"sort"
	"strings"
)

const topProductLimit = 10

// productKey prefers the stable product identifier and falls back to the
// free-text description, lower-cased with whitespace runs collapsed and
// hyphenated, so "Barahsinghe  Pilsner" and "barahsinghe pilsner" group
// together.
func productKey(item InvoiceItemRecord) string {
	if item.ProductID != "" {
		return item.ProductID
	}
	fields := strings.Fields(strings.ToLower(item.Description))
	return strings.Join(fields, "-")
}

// ComputeProductMetrics explodes every invoice's items and ranks the product
// groups by revenue.
func ComputeProductMetrics(invoices []InvoiceRecord) ProductMetrics {
	groups := map[string]*ProductStat{}
	order := []string{}

	for _, inv := range invoices {
		for _, item := range inv.Items {
			key := productKey(item)
			if key == "" {
				continue
			}
			stat, ok := groups[key]
			if !ok {
				stat = &ProductStat{Key: key, Name: item.Description}
				groups[key] = stat
				order = append(order, key)
			}
			stat.TotalQuantity += item.Quantity
			stat.TotalRevenue += float64(item.Quantity) * item.Price
		}
	}

	stats := make([]ProductStat, 0, len(order))
	for _, key := range order {
		stat := *groups[key]
		if stat.TotalQuantity > 0 {
			stat.AveragePrice = stat.TotalRevenue / float64(stat.TotalQuantity)
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalRevenue > stats[j].TotalRevenue
	})

	out := ProductMetrics{TotalProducts: len(stats)}
	if len(stats) > topProductLimit {
		stats = stats[:topProductLimit]
	}
	out.TopProducts = stats
	return out
}
