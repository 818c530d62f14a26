package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carmarket/carmarketd/internal/history"
	"github.com/carmarket/carmarketd/internal/model"
	"github.com/carmarket/carmarketd/internal/scrape"
)

// marketplacePathMarker is the substring a listing URL must contain.
// Checked before any browser is launched.
const marketplacePathMarker = "facebook.com/marketplace"

// Importer-boundary errors. The HTTP layer maps these onto fixed responses.
var (
	// ErrInvalidURL is returned when the caller-supplied URL fails the
	// marketplace-path precondition.
	ErrInvalidURL = errors.New("invalid Facebook Marketplace URL")

	// ErrUnauthorized is returned when an import is requested without a
	// resolved caller identity.
	ErrUnauthorized = errors.New("unauthorized: import requires a caller identity")

	// ErrSourceBlocked is the single caller-facing class for every
	// scrape-layer failure. Timeout, launch failure, and access
	// restrictions are deliberately not distinguished here.
	ErrSourceBlocked = errors.New("facebook blocked scraping or listing is private")
)

// Fetcher fetches rendered HTML for a listing URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// CarStore persists new listings.
type CarStore interface {
	CreateCar(ctx context.Context, car *model.Car) (*model.Car, error)
}

// UserStore resolves seller public profiles for the import response.
type UserStore interface {
	FindUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuditLog records import attempts and answers duplicate queries.
// Implemented by *history.DB; optional.
type AuditLog interface {
	Add(ctx context.Context, r history.Record) error
	CountImported(ctx context.Context, externalID string) (int64, error)
}

// Importer runs the fetch → extract → normalize → persist pipeline.
type Importer struct {
	fetcher Fetcher
	cars    CarStore
	users   UserStore
	audit   AuditLog
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithUserStore sets the store used to join seller profiles into responses.
// Without one, responses fall back to the bearer identity's fields.
func WithUserStore(users UserStore) Option {
	return func(i *Importer) {
		i.users = users
	}
}

// WithAuditLog enables the import audit log and duplicate flagging.
func WithAuditLog(audit AuditLog) Option {
	return func(i *Importer) {
		i.audit = audit
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithClock overrides the time source. Tests pin the import timestamps
// and the defaulted model year with this.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		i.now = now
	}
}

// New creates an Importer around a fetcher and a listing store.
func New(fetcher Fetcher, cars CarStore, opts ...Option) *Importer {
	imp := &Importer{
		fetcher: fetcher,
		cars:    cars,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(imp)
	}

	if imp.logger == nil {
		imp.logger = slog.Default()
	}

	return imp
}

// ValidateURL enforces the marketplace-path precondition.
func ValidateURL(url string) error {
	if url == "" || !strings.Contains(url, marketplacePathMarker) {
		return ErrInvalidURL
	}
	return nil
}

// scrapeListing runs fetch+extract with the uniform failure collapse.
func (i *Importer) scrapeListing(ctx context.Context, url string) (*model.ScrapeResult, error) {
	html, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		i.logger.Warn("listing fetch failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSourceBlocked, err)
	}

	result, err := scrape.Extract(html, url)
	if err != nil {
		i.logger.Warn("listing extraction failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSourceBlocked, err)
	}

	return result, nil
}

// Preview fetches and extracts a listing without persisting anything.
// The URL precondition is checked before the fetcher is invoked.
func (i *Importer) Preview(ctx context.Context, url string) (*model.ScrapeResult, error) {
	if err := ValidateURL(url); err != nil {
		return nil, err
	}
	return i.scrapeListing(ctx, url)
}

// Import scrapes a listing and persists it as a new Car owned by the
// requesting identity, with import provenance embedded.
//
// Imports are always-insert: re-importing the same source listing creates a
// fresh record. When the audit log knows the external id from an earlier
// import, the new record is flagged as a re-import and a warning is logged,
// so duplicates stay visible instead of being silently merged or rejected.
func (i *Importer) Import(ctx context.Context, url string, identity model.Identity) (*model.Car, error) {
	if identity.ID == "" {
		return nil, ErrUnauthorized
	}
	if err := ValidateURL(url); err != nil {
		return nil, err
	}

	sellerID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id %q", ErrUnauthorized, identity.ID)
	}

	result, err := i.scrapeListing(ctx, url)
	if err != nil {
		i.record(ctx, history.Record{
			URL:      url,
			SellerID: identity.ID,
			Status:   history.StatusFailed,
		})
		return nil, err
	}

	now := i.now().UTC()
	car, defaulted := scrape.Normalize(result, now)
	car.SellerID = sellerID
	car.FacebookSource = &model.FacebookSource{
		URL:             url,
		ExternalID:      result.ExternalID,
		ImportedAt:      now,
		LastSyncedAt:    now,
		Reimport:        i.previouslyImported(ctx, result.ExternalID),
		DefaultedFields: defaulted,
	}

	created, err := i.cars.CreateCar(ctx, car)
	if err != nil {
		i.record(ctx, history.Record{
			URL:        url,
			ExternalID: result.ExternalID,
			SellerID:   identity.ID,
			Status:     history.StatusFailed,
		})
		return nil, fmt.Errorf("failed to persist imported listing: %w", err)
	}

	i.record(ctx, history.Record{
		URL:        url,
		ExternalID: result.ExternalID,
		CarID:      created.ID.Hex(),
		SellerID:   identity.ID,
		Status:     history.StatusImported,
	})

	created.Seller = i.sellerProfile(ctx, identity)

	i.logger.Info("listing imported",
		"carID", created.ID.Hex(),
		"externalID", result.ExternalID,
		"seller", identity.ID,
		"reimport", created.FacebookSource.Reimport,
	)

	return created, nil
}

// previouslyImported reports whether the audit log has already seen a
// successful import of this external id.
func (i *Importer) previouslyImported(ctx context.Context, externalID string) bool {
	if i.audit == nil || externalID == "" {
		return false
	}

	n, err := i.audit.CountImported(ctx, externalID)
	if err != nil {
		i.logger.Warn("duplicate check failed", "externalID", externalID, "error", err)
		return false
	}
	if n > 0 {
		i.logger.Warn("listing already imported; creating a fresh snapshot",
			"externalID", externalID,
			"priorImports", n,
		)
	}
	return n > 0
}

// record writes one audit entry. Audit failures are logged, never fatal:
// the audit log must not be able to fail an import.
func (i *Importer) record(ctx context.Context, r history.Record) {
	if i.audit == nil {
		return
	}
	if err := i.audit.Add(ctx, r); err != nil {
		i.logger.Warn("failed to record import attempt", "url", r.URL, "error", err)
	}
}

// sellerProfile joins the owner's public profile into the response,
// falling back to the bearer identity when the user store has no record.
func (i *Importer) sellerProfile(ctx context.Context, identity model.Identity) *model.Seller {
	if i.users != nil {
		if user, err := i.users.FindUserByID(ctx, identity.ID); err == nil {
			return user.PublicProfile()
		}
	}
	return &model.Seller{ID: identity.ID, Email: identity.Email}
}
