// Package main provides the entry point for the carmarketd CLI.
//
// carmarketd imports Facebook Marketplace car listings into the marketplace
// database. It runs as an HTTP service for the web frontend or as one-shot
// commands for operators.
//
// Usage:
//
//	carmarketd serve
//	carmarketd preview <listing-url>
//	carmarketd import --seller <user-id> <listing-url>
//
// See --help for all available options.
package main

// main is the entry point for carmarketd.
func main() {
	Execute()
}
