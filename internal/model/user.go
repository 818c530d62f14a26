package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the authenticated caller resolved from a bearer token.
// The importer trusts this identity verbatim as the owner of listings it
// creates; validating the token is the auth middleware's job.
type Identity struct {
	// ID is the user's store id (hex ObjectID).
	ID string `json:"id"`

	// Email is the user's login email.
	Email string `json:"email"`
}

// User is the persisted account entity. Only the fields the import service
// reads are modeled here; authentication flows live in a separate service.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile returns the seller-facing subset of the user record.
func (u *User) PublicProfile() *Seller {
	return &Seller{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}
