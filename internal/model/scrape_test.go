package model

import "testing"

// TestScrapeResult_Price tests the price accessors.
func TestScrapeResult_Price(t *testing.T) {
	t.Parallel()

	t.Run("with price", func(t *testing.T) {
		t.Parallel()

		price := 12500.0
		r := &ScrapeResult{Price: &price}

		if !r.HasPrice() {
			t.Error("HasPrice should be true")
		}
		if r.PriceOrZero() != 12500 {
			t.Errorf("PriceOrZero: got %v", r.PriceOrZero())
		}
	})

	t.Run("without price", func(t *testing.T) {
		t.Parallel()

		r := &ScrapeResult{}

		if r.HasPrice() {
			t.Error("HasPrice should be false")
		}
		if r.PriceOrZero() != 0 {
			t.Errorf("PriceOrZero: got %v", r.PriceOrZero())
		}
	})
}
