// Package model defines the core data structures used throughout carmarketd.
//
// This package contains the following main types:
//   - ScrapeResult: Best-effort data extracted from a marketplace listing page
//   - Car: The persisted listing entity, owned by a seller
//   - FacebookSource: Import provenance attached to scraped listings
//   - Identity / Seller: The authenticated caller and its public profile
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scrape, importer, storage, server) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for API responses and
// to BSON for MongoDB storage.
package model
