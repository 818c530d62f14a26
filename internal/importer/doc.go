// Package importer orchestrates the marketplace import pipeline:
// fetch the listing page, extract its fields, normalize them into a
// listing, and persist it owned by the requesting user.
//
// The preview variant runs fetch+extract only, letting a user inspect the
// scraped data before committing to an import.
//
// # Failure policy
//
// Every scrape-layer failure is collapsed into ErrSourceBlocked at this
// boundary. Whether the page timed out, the browser failed to launch, or
// the source served an interstitial is logged but never surfaced to the
// caller. No retry is attempted at any layer: this is a best-effort,
// user-triggered one-shot action, and hidden retries would only multiply
// load against the scraped source.
package importer
