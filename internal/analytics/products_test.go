package analytics

import (
	"testing"
)

func TestProductGroupingCaseInsensitive(t *testing.T) {
	invoices := []InvoiceRecord{
		{ID: "i1", Items: []InvoiceItemRecord{{Description: "IPA", Quantity: 2, Price: 10}}},
		{ID: "i2", Items: []InvoiceItemRecord{{Description: "ipa", Quantity: 3, Price: 10}}},
	}

	got := ComputeProductMetrics(invoices)
	if got.TotalProducts != 1 {
		t.Fatalf("expected a single product group, got %d", got.TotalProducts)
	}
	if got.TopProducts[0].TotalQuantity != 5 {
		t.Fatalf("expected summed quantity 5, got %d", got.TopProducts[0].TotalQuantity)
	}
	if got.TopProducts[0].TotalRevenue != 50 {
		t.Fatalf("expected revenue 50, got %v", got.TopProducts[0].TotalRevenue)
	}
}

func TestProductGroupingCollapsesWhitespace(t *testing.T) {
	invoices := []InvoiceRecord{
		{ID: "i1", Items: []InvoiceItemRecord{{Description: "Barahsinghe  Pilsner", Quantity: 1, Price: 8}}},
		{ID: "i2", Items: []InvoiceItemRecord{{Description: "barahsinghe pilsner", Quantity: 1, Price: 8}}},
	}

	got := ComputeProductMetrics(invoices)
	if got.TotalProducts != 1 {
		t.Fatalf("expected grouped product, got %d groups", got.TotalProducts)
	}
	if got.TopProducts[0].Key != "barahsinghe-pilsner" {
		t.Fatalf("unexpected product key %q", got.TopProducts[0].Key)
	}
}

func TestProductGroupingPrefersStableID(t *testing.T) {
	invoices := []InvoiceRecord{
		{ID: "i1", Items: []InvoiceItemRecord{{ProductID: "sku-1", Description: "Old Label", Quantity: 1, Price: 5}}},
		{ID: "i2", Items: []InvoiceItemRecord{{ProductID: "sku-1", Description: "New Label", Quantity: 2, Price: 5}}},
	}

	got := ComputeProductMetrics(invoices)
	if got.TotalProducts != 1 {
		t.Fatalf("expected one group by SKU, got %d", got.TotalProducts)
	}
	if got.TopProducts[0].TotalQuantity != 3 {
		t.Fatalf("expected quantity 3, got %d", got.TopProducts[0].TotalQuantity)
	}
}

func TestProductMetricsRankingAndAveragePrice(t *testing.T) {
	invoices := []InvoiceRecord{
		{ID: "i1", Items: []InvoiceItemRecord{
			{Description: "Pilsner", Quantity: 10, Price: 8},
			{Description: "Stout", Quantity: 2, Price: 12},
		}},
		{ID: "i2", Items: []InvoiceItemRecord{
			{Description: "Stout", Quantity: 4, Price: 12},
		}},
	}

	got := ComputeProductMetrics(invoices)
	if got.TotalProducts != 2 {
		t.Fatalf("expected 2 groups, got %d", got.TotalProducts)
	}
	if got.TopProducts[0].Name != "Pilsner" {
		t.Fatalf("expected Pilsner ranked first, got %q", got.TopProducts[0].Name)
	}
	stout := got.TopProducts[1]
	if stout.TotalQuantity != 6 || stout.TotalRevenue != 72 {
		t.Fatalf("unexpected stout figures %+v", stout)
	}
	if stout.AveragePrice != 12 {
		t.Fatalf("expected average price 12, got %v", stout.AveragePrice)
	}
}

func TestProductMetricsZeroQuantityGuard(t *testing.T) {
	invoices := []InvoiceRecord{
		{ID: "i1", Items: []InvoiceItemRecord{{Description: "Sampler", Quantity: 0, Price: 15}}},
	}

	got := ComputeProductMetrics(invoices)
	if got.TopProducts[0].AveragePrice != 0 {
		t.Fatalf("expected zero average price for zero quantity, got %v", got.TopProducts[0].AveragePrice)
	}
}
