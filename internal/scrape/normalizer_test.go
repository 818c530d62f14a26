package scrape

import (
	"testing"
	"time"

	"github.com/carmarket/carmarketd/internal/model"
)

// TestSplitTitle tests brand/model derivation from listing titles.
func TestSplitTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		title     string
		wantBrand string
		wantModel string
	}{
		{
			name:      "brand and multi-word model",
			title:     "Toyota Camry 2019",
			wantBrand: "Toyota",
			wantModel: "Camry 2019",
		},
		{
			name:      "two tokens",
			title:     "Honda Civic",
			wantBrand: "Honda",
			wantModel: "Civic",
		},
		{
			name:      "single token uses brand for both",
			title:     "Tesla",
			wantBrand: "Tesla",
			wantModel: "Tesla",
		},
		{
			name:      "empty title",
			title:     "",
			wantBrand: UnknownTitle,
			wantModel: UnknownTitle,
		},
		{
			name:      "whitespace-only title",
			title:     "   ",
			wantBrand: UnknownTitle,
			wantModel: UnknownTitle,
		},
		{
			name:      "collapses interior whitespace",
			title:     "Ford   F-150   XLT",
			wantBrand: "Ford",
			wantModel: "F-150 XLT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			brand, vehicleModel := SplitTitle(tt.title)
			if brand != tt.wantBrand {
				t.Errorf("brand: got %q, want %q", brand, tt.wantBrand)
			}
			if vehicleModel != tt.wantModel {
				t.Errorf("model: got %q, want %q", vehicleModel, tt.wantModel)
			}
		})
	}
}

// TestNormalize tests scrape-result to car mapping with defaults.
func TestNormalize(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("maps scraped fields and fills defaults", func(t *testing.T) {
		t.Parallel()

		price := 18500.0
		res := &model.ScrapeResult{
			Title:       "Toyota Camry 2019",
			Description: "Low mileage, clean title.",
			Price:       &price,
			Images:      []string{"https://cdn.example.com/front.jpg"},
		}

		car, defaulted := Normalize(res, now)

		if car.Brand != "Toyota" || car.Model != "Camry 2019" {
			t.Errorf("brand/model: got %q / %q", car.Brand, car.Model)
		}
		if car.Price != 18500 {
			t.Errorf("price: got %v", car.Price)
		}
		if car.Year != 2026 {
			t.Errorf("year should default to the current year, got %d", car.Year)
		}
		if car.Mileage != 0 {
			t.Errorf("mileage should default to 0, got %d", car.Mileage)
		}
		if car.Condition != model.ConditionUsed {
			t.Errorf("condition should default to used, got %q", car.Condition)
		}
		if len(car.Platforms) != 1 || car.Platforms[0] != "facebook" {
			t.Errorf("platforms: got %v", car.Platforms)
		}
		if len(car.Images) != 1 {
			t.Errorf("images: got %v", car.Images)
		}

		// Price was scraped, so it must not appear in the defaulted list.
		for _, f := range defaulted {
			if f == FieldPrice {
				t.Error("price should not be recorded as defaulted when scraped")
			}
		}
	})

	t.Run("missing price becomes zero and is recorded as defaulted", func(t *testing.T) {
		t.Parallel()

		res := &model.ScrapeResult{Title: "Honda Civic"}

		car, defaulted := Normalize(res, now)

		if car.Price != 0 {
			t.Errorf("price: got %v, want 0", car.Price)
		}

		found := false
		for _, f := range defaulted {
			if f == FieldPrice {
				found = true
			}
		}
		if !found {
			t.Errorf("defaulted fields should include %q: %v", FieldPrice, defaulted)
		}
	})

	t.Run("always records mileage, year, and condition as defaulted", func(t *testing.T) {
		t.Parallel()

		price := 100.0
		res := &model.ScrapeResult{Title: "Honda Civic", Price: &price}

		_, defaulted := Normalize(res, now)

		for _, want := range []string{FieldMileage, FieldYear, FieldCondition} {
			found := false
			for _, f := range defaulted {
				if f == want {
					found = true
				}
			}
			if !found {
				t.Errorf("defaulted fields should include %q: %v", want, defaulted)
			}
		}
	})
}
