// Package scrape implements the marketplace listing scrape pipeline:
// fetch rendered HTML with a headless browser, extract listing fields from
// it, and normalize the result into a create-ready listing.
//
// # Components
//
//   - Fetcher: drives one isolated headless Chrome process per call via
//     chromedp and returns the rendered document
//   - Extractor: goquery-based field extraction with an ordered list of
//     fallback strategies per field
//   - Normalize: maps a ScrapeResult onto listing fields with conservative
//     defaults for data the source page does not expose
//
// # Extraction policy
//
// Each field is tried against its strategies in order until one yields a
// value. The strategy lists are data, not nested conditionals, so adding a
// new fallback source for a field is a pure addition.
//
// # Resource handling
//
// The fetcher launches and tears down the browser inside a single Fetch
// call. The allocator and tab contexts are released via defer on every exit
// path, including navigation timeouts, so a failed fetch never leaks a
// Chrome process. Browser instances are never shared between requests.
package scrape
