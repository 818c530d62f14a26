package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/carmarket/carmarketd/internal/model"
)

// UnknownTitle is the terminal fallback when a page exposes no usable title.
const UnknownTitle = "Unknown"

var (
	// dollarPricePattern matches a dollar sign followed by digit groups in
	// raw HTML, e.g. "$12,500" or "Asking $8,000 OBO". Used only when the
	// structured price meta tag is absent.
	dollarPricePattern = regexp.MustCompile(`\$\s*([0-9,]+)`)

	// externalIDPattern extracts the numeric listing id from a marketplace
	// URL path segment like /marketplace/item/123456789/.
	externalIDPattern = regexp.MustCompile(`item/(\d+)`)
)

// page bundles the parsed document with the raw inputs so strategies can
// choose their source: structured meta tags from the DOM, or text patterns
// over the raw HTML.
type page struct {
	doc *goquery.Document
	raw string
	url string
}

// textStrategy is one source for a string-valued field. Strategies for a
// field are tried in order until one reports ok.
type textStrategy struct {
	name    string
	extract func(p *page) (string, bool)
}

// priceStrategy is one source for the numeric price field.
type priceStrategy struct {
	name    string
	extract func(p *page) (float64, bool)
}

// metaContent returns a strategy reading a <meta property=...> content
// attribute. Empty content counts as absent.
func metaContent(name string, property string) textStrategy {
	return textStrategy{
		name: name,
		extract: func(p *page) (string, bool) {
			content, exists := p.doc.Find(fmt.Sprintf("meta[property=%q]", property)).First().Attr("content")
			content = strings.TrimSpace(content)
			return content, exists && content != ""
		},
	}
}

// documentTitle reads the <title> element text.
func documentTitle() textStrategy {
	return textStrategy{
		name: "document title",
		extract: func(p *page) (string, bool) {
			title := strings.TrimSpace(p.doc.Find("title").First().Text())
			return title, title != ""
		},
	}
}

// literal always yields the given value. Terminal fallback.
func literal(value string) textStrategy {
	return textStrategy{
		name: "literal " + strconv.Quote(value),
		extract: func(_ *page) (string, bool) {
			return value, true
		},
	}
}

// metaPrice reads the structured product:price:amount meta tag. A value
// that does not parse, or parses to zero or less, counts as absent so the
// text fallback still runs (zero-priced meta tags are placeholder markup,
// not real prices).
func metaPrice() priceStrategy {
	return priceStrategy{
		name: "product:price:amount meta",
		extract: func(p *page) (float64, bool) {
			content, exists := p.doc.Find(`meta[property="product:price:amount"]`).First().Attr("content")
			if !exists {
				return 0, false
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
			if err != nil || v <= 0 {
				return 0, false
			}
			return v, true
		},
	}
}

// dollarText scans the raw HTML for the first $-prefixed digit group,
// stripping comma separators before coercion.
func dollarText() priceStrategy {
	return priceStrategy{
		name: "dollar text fallback",
		extract: func(p *page) (float64, bool) {
			m := dollarPricePattern.FindStringSubmatch(p.raw)
			if m == nil {
				return 0, false
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil {
				return 0, false
			}
			return v, true
		},
	}
}

// Field strategy tables, tried in order. Order is the extraction contract:
// structured meta tags always win over text-pattern fallbacks.
var (
	titleStrategies = []textStrategy{
		metaContent("og:title meta", "og:title"),
		documentTitle(),
		literal(UnknownTitle),
	}

	descriptionStrategies = []textStrategy{
		metaContent("og:description meta", "og:description"),
		literal(""),
	}

	priceStrategies = []priceStrategy{
		metaPrice(),
		dollarText(),
	}
)

// firstText runs strategies in order and returns the first hit.
// The literal terminal strategy guarantees a result for title/description.
func firstText(p *page, strategies []textStrategy) string {
	for _, s := range strategies {
		if v, ok := s.extract(p); ok {
			return v
		}
	}
	return ""
}

// firstPrice runs price strategies in order. Returns nil when none match;
// a missing price is data, not an error.
func firstPrice(p *page, strategies []priceStrategy) *float64 {
	for _, s := range strategies {
		if v, ok := s.extract(p); ok {
			return &v
		}
	}
	return nil
}

// extractImages collects every og:image content attribute in document order,
// deduplicated while preserving first-seen order.
func extractImages(p *page) []string {
	images := make([]string, 0)
	seen := make(map[string]bool)

	p.doc.Find(`meta[property="og:image"]`).Each(func(_ int, s *goquery.Selection) {
		src, exists := s.Attr("content")
		if !exists || src == "" || seen[src] {
			return
		}
		seen[src] = true
		images = append(images, src)
	})

	return images
}

// extractLocation reports the low-fidelity location marker: the presence of
// a geo meta tag means "listing has a location", nothing more. The source
// platform does not expose a parseable location string in the page head.
func extractLocation(p *page) *string {
	if p.doc.Find(`meta[property="place:location:latitude"]`).Length() == 0 {
		return nil
	}
	loc := model.LocationPlaceholder
	return &loc
}

// ExternalID extracts the platform-assigned listing id from a marketplace
// URL, or "" when the URL carries no /item/<digits> segment.
func ExternalID(url string) string {
	m := externalIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// Extract parses raw HTML fetched from sourceURL into a ScrapeResult.
//
// Extraction never fails for missing optional fields; every field falls
// back through its strategy list independently. The only error case is a
// document the HTML parser cannot consume at all.
func Extract(rawHTML, sourceURL string) (*model.ScrapeResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	p := &page{doc: doc, raw: rawHTML, url: sourceURL}

	return &model.ScrapeResult{
		Title:       firstText(p, titleStrategies),
		Description: firstText(p, descriptionStrategies),
		Price:       firstPrice(p, priceStrategies),
		Images:      extractImages(p),
		Location:    extractLocation(p),
		ExternalID:  ExternalID(sourceURL),
	}, nil
}
