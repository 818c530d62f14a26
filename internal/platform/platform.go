package platform

import (
	"context"

	"github.com/carmarket/carmarketd/internal/model"
)

// Platform identifies an external marketplace.
type Platform string

// Supported marketplace platforms.
const (
	// Facebook represents Facebook Marketplace. Listings can be imported
	// from it, but posting has no public API.
	Facebook Platform = "facebook"
	// OLX represents OLX classifieds.
	OLX Platform = "olx"
	// Edmunds represents Edmunds.
	Edmunds Platform = "edmunds"
)

// String returns the string representation of the Platform.
func (p Platform) String() string {
	return string(p)
}

// IsValid returns true if this is a known platform.
func (p Platform) IsValid() bool {
	switch p {
	case Facebook, OLX, Edmunds:
		return true
	default:
		return false
	}
}

// PostStatus tags the outcome variant of a posting attempt.
type PostStatus string

// Posting outcome variants.
const (
	// PostStatusPosted means the listing was published on the platform.
	PostStatusPosted PostStatus = "posted"
	// PostStatusNotSupported means the platform cannot accept postings
	// through this service.
	PostStatusNotSupported PostStatus = "not_supported"
)

// PostResult is the tagged result of posting one listing to one platform.
// Reason is set only for PostStatusNotSupported.
type PostResult struct {
	Platform Platform   `json:"platform"`
	Status   PostStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
}

// Posted reports whether the attempt published the listing.
func (r PostResult) Posted() bool {
	return r.Status == PostStatusPosted
}

// notSupported builds the standard not-supported result for a platform.
func notSupported(p Platform, reason string) PostResult {
	return PostResult{Platform: p, Status: PostStatusNotSupported, Reason: reason}
}

// Post attempts to publish the listing on a single platform.
//
// Every platform currently reports not-supported: none of them exposes a
// public posting API. The car argument is accepted so posters keep a stable
// signature for when an API becomes available.
func Post(_ context.Context, p Platform, _ *model.Car) PostResult {
	switch p {
	case Facebook:
		return notSupported(p, "Facebook Marketplace has no public posting API")
	case OLX:
		return notSupported(p, "OLX API access not available")
	case Edmunds:
		return notSupported(p, "Edmunds does not accept third-party postings")
	default:
		return notSupported(p, "Unknown platform")
	}
}

// PostAll attempts to publish the listing on each named platform in order
// and returns one tagged result per platform.
func PostAll(ctx context.Context, car *model.Car, platforms []Platform) []PostResult {
	results := make([]PostResult, 0, len(platforms))
	for _, p := range platforms {
		results = append(results, Post(ctx, p, car))
	}
	return results
}
