package scrape

import (
	"strings"
	"time"

	"github.com/carmarket/carmarketd/internal/model"
	"github.com/carmarket/carmarketd/internal/platform"
)

// Names of Car fields the normalizer fills with conservative defaults when
// the scrape surface does not expose them. Recorded in the provenance
// sub-record so consumers can tell scraped-unknown from seller-confirmed.
const (
	FieldPrice     = "price"
	FieldMileage   = "mileage"
	FieldYear      = "year"
	FieldCondition = "condition"
)

// SplitTitle derives brand and vehicle model from a free-text listing title.
// The first whitespace-delimited token is the brand; the remainder, joined
// by single spaces, is the model. A single-token title yields the brand's
// value for both; an empty title yields UnknownTitle for both.
func SplitTitle(title string) (brand, vehicleModel string) {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return UnknownTitle, UnknownTitle
	}

	brand = fields[0]
	if len(fields) == 1 {
		return brand, brand
	}
	return brand, strings.Join(fields[1:], " ")
}

// Normalize maps a ScrapeResult onto create-ready Car fields.
//
// The source platform's page metadata does not reliably expose mileage,
// year, or condition, so those become conservative defaults rather than
// failing the import: availability over completeness. The second return
// value names every defaulted field.
//
// Identity, ownership, provenance, and timestamps are the importer's job;
// the returned Car carries only scraped and defaulted listing data.
func Normalize(res *model.ScrapeResult, now time.Time) (*model.Car, []string) {
	brand, vehicleModel := SplitTitle(res.Title)

	defaulted := []string{FieldMileage, FieldYear, FieldCondition}
	if !res.HasPrice() {
		defaulted = append([]string{FieldPrice}, defaulted...)
	}

	return &model.Car{
		Brand:       brand,
		Model:       vehicleModel,
		Year:        now.Year(),
		Price:       res.PriceOrZero(),
		Mileage:     0,
		Description: res.Description,
		Condition:   model.ConditionUsed,
		Platforms:   []string{platform.Facebook.String()},
		Images:      res.Images,
	}, defaulted
}
