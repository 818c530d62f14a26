// Package server exposes the import pipeline over HTTP.
//
// Routes:
//
//	GET  /                              health check
//	POST /api/scrape/facebook/preview   scrape a listing without persisting
//	POST /api/scrape/facebook/import    scrape and persist (auth required)
//	GET  /api/cars/{id}                 read one listing
//	DELETE /api/cars/{id}               delete an owned listing (auth required)
//	POST /api/cars/{id}/sold            mark an owned listing sold (auth required)
//
// Error responses are {"message": string} with fixed strings. Scrape
// failures are reported uniformly as a blocked-or-private source; the
// lower-level cause goes to the log, never to the caller.
package server
