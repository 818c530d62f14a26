package scrape

import "errors"

// Scrape-layer errors.
//
// Design decision: We use package-level sentinel errors rather than custom
// error types. Callers only need errors.Is() to classify failures; the
// HTTP boundary deliberately collapses all of them into one generic
// response and never forwards the underlying detail.
var (
	// ErrFetchFailed is returned when browser navigation did not complete:
	// launch failure, network error, or the page-load timeout elapsing.
	// Access restrictions on the source page surface the same way, so this
	// class also covers blocked-or-private listings.
	ErrFetchFailed = errors.New("fetch failed: page did not load")

	// ErrParseFailed is returned when the fetched document could not be
	// parsed at all. Missing fields are not parse failures; extraction is
	// best-effort per field.
	ErrParseFailed = errors.New("parse failed: invalid HTML document")
)
