package scrape

import (
	"testing"

	"github.com/carmarket/carmarketd/internal/model"
)

const listingURL = "https://www.facebook.com/marketplace/item/123456789/"

// TestExtract_Title tests the ordered title fallback chain.
func TestExtract_Title(t *testing.T) {
	t.Parallel()

	t.Run("og:title wins over document title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:title" content="Toyota Camry 2019" />
			<title>Marketplace - Facebook</title>
		</head><body></body></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Title != "Toyota Camry 2019" {
			t.Errorf("expected og:title value, got %q", result.Title)
		}
	})

	t.Run("falls back to document title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Honda Civic for sale</title></head><body></body></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Title != "Honda Civic for sale" {
			t.Errorf("expected document title, got %q", result.Title)
		}
	})

	t.Run("falls back to Unknown when page has no title", func(t *testing.T) {
		t.Parallel()

		result, err := Extract(`<html><head></head><body></body></html>`, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Title != UnknownTitle {
			t.Errorf("expected %q, got %q", UnknownTitle, result.Title)
		}
	})

	t.Run("empty og:title content counts as absent", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:title" content="" />
			<title>Fallback Title</title>
		</head></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Title != "Fallback Title" {
			t.Errorf("expected fallback to document title, got %q", result.Title)
		}
	})
}

// TestExtract_Description tests description extraction.
func TestExtract_Description(t *testing.T) {
	t.Parallel()

	t.Run("reads og:description", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:description" content="One owner, garage kept." />
		</head></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Description != "One owner, garage kept." {
			t.Errorf("unexpected description: %q", result.Description)
		}
	})

	t.Run("empty when meta tag absent", func(t *testing.T) {
		t.Parallel()

		result, err := Extract(`<html><head></head></html>`, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Description != "" {
			t.Errorf("expected empty description, got %q", result.Description)
		}
	})
}

// TestExtract_Price tests the structured-then-text price fallback.
func TestExtract_Price(t *testing.T) {
	t.Parallel()

	t.Run("structured meta tag wins over dollar text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="product:price:amount" content="15000" />
		</head><body>Was $20,000 last week</body></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if !result.HasPrice() || *result.Price != 15000 {
			t.Errorf("expected price 15000, got %v", result.Price)
		}
	})

	t.Run("dollar text with comma separators", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span>$12,500</span></body></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if !result.HasPrice() || *result.Price != 12500 {
			t.Errorf("expected price 12500, got %v", result.Price)
		}
	})

	t.Run("dollar amount inside surrounding text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>Asking $8,000 OBO</body></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if !result.HasPrice() || *result.Price != 8000 {
			t.Errorf("expected price 8000, got %v", result.Price)
		}
	})

	t.Run("zero meta price falls through to dollar text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="product:price:amount" content="0" />
		</head><body>$9,999</body></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if !result.HasPrice() || *result.Price != 9999 {
			t.Errorf("expected fallback price 9999, got %v", result.Price)
		}
	})

	t.Run("nil when no price pattern matches", func(t *testing.T) {
		t.Parallel()

		result, err := Extract(`<html><body>Contact seller for price</body></html>`, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.HasPrice() {
			t.Errorf("expected nil price, got %v", *result.Price)
		}
		if result.PriceOrZero() != 0 {
			t.Errorf("PriceOrZero should be 0, got %v", result.PriceOrZero())
		}
	})
}

// TestExtract_Images tests og:image collection and deduplication.
func TestExtract_Images(t *testing.T) {
	t.Parallel()

	t.Run("preserves document order and drops duplicates", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:image" content="https://cdn.example.com/a.jpg" />
			<meta property="og:image" content="https://cdn.example.com/b.jpg" />
			<meta property="og:image" content="https://cdn.example.com/a.jpg" />
			<meta property="og:image" content="https://cdn.example.com/c.jpg" />
		</head></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}

		want := []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
			"https://cdn.example.com/c.jpg",
		}
		if len(result.Images) != len(want) {
			t.Fatalf("expected %d images, got %d: %v", len(want), len(result.Images), result.Images)
		}
		for i, url := range want {
			if result.Images[i] != url {
				t.Errorf("image[%d]: expected %q, got %q", i, url, result.Images[i])
			}
		}
	})

	t.Run("empty slice when page has no images", func(t *testing.T) {
		t.Parallel()

		result, err := Extract(`<html><head></head></html>`, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Images == nil {
			t.Error("Images should be an empty slice, not nil")
		}
		if len(result.Images) != 0 {
			t.Errorf("expected no images, got %v", result.Images)
		}
	})
}

// TestExtract_Location tests the geo-tag presence marker.
func TestExtract_Location(t *testing.T) {
	t.Parallel()

	t.Run("placeholder when geo meta tag present", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="place:location:latitude" content="40.7128" />
		</head></html>`

		result, err := Extract(html, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Location == nil {
			t.Fatal("expected location placeholder, got nil")
		}
		if *result.Location != model.LocationPlaceholder {
			t.Errorf("expected %q, got %q", model.LocationPlaceholder, *result.Location)
		}
	})

	t.Run("nil without geo meta tag", func(t *testing.T) {
		t.Parallel()

		result, err := Extract(`<html><head></head></html>`, listingURL)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if result.Location != nil {
			t.Errorf("expected nil location, got %q", *result.Location)
		}
	})
}

// TestExternalID tests listing id extraction from marketplace URLs.
func TestExternalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "standard item URL",
			url:  "https://www.facebook.com/marketplace/item/123456789/",
			want: "123456789",
		},
		{
			name: "item URL with query string",
			url:  "https://www.facebook.com/marketplace/item/987654321?ref=search",
			want: "987654321",
		},
		{
			name: "no item segment",
			url:  "https://www.facebook.com/marketplace/category/cars",
			want: "",
		},
		{
			name: "empty URL",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExternalID(tt.url); got != tt.want {
				t.Errorf("ExternalID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestExtract_FullListing tests a representative marketplace page head.
func TestExtract_FullListing(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<meta property="og:title" content="Toyota Camry 2019" />
		<meta property="og:description" content="Low mileage, clean title." />
		<meta property="product:price:amount" content="18500" />
		<meta property="og:image" content="https://cdn.example.com/front.jpg" />
		<meta property="og:image" content="https://cdn.example.com/rear.jpg" />
		<meta property="place:location:latitude" content="40.7128" />
		<title>Marketplace - Facebook</title>
	</head><body></body></html>`

	result, err := Extract(html, listingURL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Title != "Toyota Camry 2019" {
		t.Errorf("title: got %q", result.Title)
	}
	if result.Description != "Low mileage, clean title." {
		t.Errorf("description: got %q", result.Description)
	}
	if !result.HasPrice() || *result.Price != 18500 {
		t.Errorf("price: got %v", result.Price)
	}
	if len(result.Images) != 2 {
		t.Errorf("images: got %v", result.Images)
	}
	if result.Location == nil || *result.Location != model.LocationPlaceholder {
		t.Errorf("location: got %v", result.Location)
	}
	if result.ExternalID != "123456789" {
		t.Errorf("externalID: got %q", result.ExternalID)
	}
}
