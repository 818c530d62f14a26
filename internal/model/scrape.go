package model

// LocationPlaceholder is the value stored when a listing page carries a geo
// meta tag. The source platform does not expose a parseable location string,
// so presence of the tag is all we can report. Known-low-fidelity field;
// callers must not treat it as a real place name.
const LocationPlaceholder = "Facebook Listing"

// ScrapeResult holds the best-effort data extracted from a single marketplace
// listing page. It is produced per request and never persisted as-is; the
// normalizer turns it into a create-ready Car.
//
// Field names in JSON match the preview API response shape.
type ScrapeResult struct {
	// Title is the best-effort page title. "Unknown" when neither an
	// Open Graph title nor a document title was found.
	Title string `json:"title"`

	// Description is the Open Graph description, or empty.
	Description string `json:"description"`

	// Price is the parsed numeric price. Nil when no price pattern matched.
	Price *float64 `json:"price"`

	// Images holds candidate image URLs in document order.
	// Invariant: contains no duplicate URLs (first occurrence wins).
	Images []string `json:"images"`

	// Location is LocationPlaceholder when the page carries a geo meta tag,
	// nil otherwise.
	Location *string `json:"location"`

	// ExternalID is the platform-assigned listing id extracted from the URL
	// path. Empty when the URL carries no /item/<digits> segment.
	ExternalID string `json:"externalId,omitempty"`
}

// HasPrice reports whether a price was extracted.
func (r *ScrapeResult) HasPrice() bool {
	return r.Price != nil
}

// PriceOrZero returns the extracted price, or 0 when none was found.
// Imports favor availability over completeness: a listing without a
// recognizable price is stored with price 0 rather than rejected.
func (r *ScrapeResult) PriceOrZero() float64 {
	if r.Price == nil {
		return 0
	}
	return *r.Price
}
