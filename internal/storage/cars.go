package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carmarket/carmarketd/internal/model"
)

// CreateCar inserts a new listing and returns it with the generated id.
// CreatedAt/UpdatedAt are set here so every document carries timestamps
// regardless of which code path built the Car.
func (m *Mongo) CreateCar(ctx context.Context, car *model.Car) (*model.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now

	res, err := m.cars.InsertOne(ctx, car)
	if err != nil {
		return nil, fmt.Errorf("failed to insert car: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	car.ID = id

	return car, nil
}

// FindCarByID returns the listing with the given hex id.
// Returns ErrNotFound when no such listing exists.
func (m *Mongo) FindCarByID(ctx context.Context, id string) (*model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var car model.Car
	err = m.cars.FindOne(ctx, bson.M{"_id": oid}).Decode(&car)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find car: %w", err)
	}

	return &car, nil
}

// findOwned loads a listing and verifies ownership before any mutation.
func (m *Mongo) findOwned(ctx context.Context, id, ownerID string) (*model.Car, error) {
	car, err := m.FindCarByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !car.OwnedBy(ownerID) {
		return nil, ErrNotOwner
	}
	return car, nil
}

// DeleteCar removes a listing. Only the owning seller may delete it.
func (m *Mongo) DeleteCar(ctx context.Context, id, ownerID string) error {
	car, err := m.findOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Filter on seller as well: ownership was checked above, but the
	// delete itself must not race a seller change.
	res, err := m.cars.DeleteOne(ctx, bson.M{"_id": car.ID, "seller": car.SellerID})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkCarSold sets the terminal sold state on a listing without deleting
// the record. Only the owning seller may mark it. Idempotent: marking an
// already-sold listing keeps the original soldAt.
func (m *Mongo) MarkCarSold(ctx context.Context, id, ownerID string) (*model.Car, error) {
	car, err := m.findOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if car.Sold {
		return car, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"sold":      true,
		"soldAt":    now,
		"updatedAt": now,
	}}

	if _, err := m.cars.UpdateOne(ctx, bson.M{"_id": car.ID, "seller": car.SellerID}, update); err != nil {
		return nil, fmt.Errorf("failed to mark car sold: %w", err)
	}

	car.Sold = true
	car.SoldAt = &now
	car.UpdatedAt = now
	return car, nil
}
