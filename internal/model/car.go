package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Condition represents the advertised condition of a listed vehicle.
type Condition string

// Vehicle condition constants.
const (
	// ConditionNew represents a new, unregistered vehicle.
	ConditionNew Condition = "new"
	// ConditionUsed represents a previously owned vehicle.
	ConditionUsed Condition = "used"
	// ConditionCertified represents a certified pre-owned vehicle.
	ConditionCertified Condition = "certified"
)

// String returns the string representation of the Condition.
func (c Condition) String() string {
	return string(c)
}

// IsValid returns true if this is a known condition value.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionCertified:
		return true
	default:
		return false
	}
}

// FacebookSource is the provenance sub-record embedded in a Car created via
// marketplace import. It links the stored listing back to the page it was
// scraped from.
type FacebookSource struct {
	// URL is the marketplace listing URL the import was requested for.
	URL string `bson:"url" json:"url"`

	// ExternalID is the platform-assigned listing id, when the URL carried one.
	ExternalID string `bson:"externalId,omitempty" json:"externalId,omitempty"`

	// ImportedAt is when the import created this record.
	ImportedAt time.Time `bson:"importedAt" json:"importedAt"`

	// LastSyncedAt is when the scraped data was last refreshed from the source.
	// Equal to ImportedAt until a re-sync feature exists.
	LastSyncedAt time.Time `bson:"lastSyncedAt" json:"lastSyncedAt"`

	// Reimport is true when an earlier import of the same external id already
	// exists. Imports are deliberately always-insert (every import is a fresh
	// snapshot); this flag lets operators audit the duplicates instead of the
	// store silently rejecting them.
	Reimport bool `bson:"reimport,omitempty" json:"reimport,omitempty"`

	// DefaultedFields names the stored fields whose values are conservative
	// defaults rather than scraped data (the source page does not expose
	// them). Distinguishes scraped-unknown from seller-confirmed values.
	DefaultedFields []string `bson:"defaultedFields,omitempty" json:"defaultedFields,omitempty"`
}

// Seller is the public profile of a listing owner, joined into API responses.
type Seller struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Car is the persisted listing entity. A Car is exclusively owned by one
// seller for mutation purposes and visible to all users for read.
//
// BSON field names match the document shape written by the original
// Mongoose schema so both backends can share a database.
type Car struct {
	// ID is the system-generated listing id.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Required fields.
	Brand       string    `bson:"brand" json:"brand"`
	Model       string    `bson:"model" json:"model"`
	Year        int       `bson:"year" json:"year"`
	Price       float64   `bson:"price" json:"price"`
	Mileage     int       `bson:"mileage" json:"mileage"`
	Description string    `bson:"description" json:"description"`
	Condition   Condition `bson:"condition" json:"condition"`

	// Platforms names the marketplaces this listing appears on.
	Platforms []string `bson:"platforms" json:"platforms"`

	// Images holds image URLs or upload paths, in display order.
	Images []string `bson:"images" json:"images"`

	// SellerID references the owning user. Mutations are restricted to this user.
	SellerID primitive.ObjectID `bson:"seller" json:"-"`

	// Seller is the owner's public profile, joined in at read time.
	// Never stored; the database keeps only SellerID.
	Seller *Seller `bson:"-" json:"seller,omitempty"`

	// Optional free-form vehicle specs.
	FuelType     string `bson:"fuelType,omitempty" json:"fuelType,omitempty"`
	Transmission string `bson:"transmission,omitempty" json:"transmission,omitempty"`
	Color        string `bson:"color,omitempty" json:"color,omitempty"`
	EngineSize   string `bson:"engineSize,omitempty" json:"engineSize,omitempty"`
	Doors        int    `bson:"doors,omitempty" json:"doors,omitempty"`
	Cylinders    int    `bson:"cylinders,omitempty" json:"cylinders,omitempty"`
	Drivetrain   string `bson:"drivetrain,omitempty" json:"drivetrain,omitempty"`
	BodyType     string `bson:"bodyType,omitempty" json:"bodyType,omitempty"`

	// Phone is the seller's contact number for this listing.
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`

	// FacebookSource is set only on listings created via marketplace import.
	FacebookSource *FacebookSource `bson:"facebookSource,omitempty" json:"facebookSource,omitempty"`

	// Sold marks the terminal listing state. The record is kept, not deleted.
	Sold   bool       `bson:"sold,omitempty" json:"sold,omitempty"`
	SoldAt *time.Time `bson:"soldAt,omitempty" json:"soldAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OwnedBy reports whether the given user id owns this listing.
func (c *Car) OwnedBy(userID string) bool {
	return c.SellerID.Hex() == userID
}
