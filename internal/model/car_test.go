package model

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestCondition_IsValid tests condition validation.
func TestCondition_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition Condition
		want      bool
	}{
		{name: "new", condition: ConditionNew, want: true},
		{name: "used", condition: ConditionUsed, want: true},
		{name: "certified", condition: ConditionCertified, want: true},
		{name: "unknown value", condition: Condition("salvage"), want: false},
		{name: "empty", condition: Condition(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.condition.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCar_OwnedBy tests the ownership check.
func TestCar_OwnedBy(t *testing.T) {
	t.Parallel()

	sellerID := primitive.NewObjectID()
	car := &Car{SellerID: sellerID}

	if !car.OwnedBy(sellerID.Hex()) {
		t.Error("owner should be recognized")
	}
	if car.OwnedBy(primitive.NewObjectID().Hex()) {
		t.Error("a different user must not be recognized as owner")
	}
	if car.OwnedBy("") {
		t.Error("empty user id must not be recognized as owner")
	}
}

// TestUser_PublicProfile tests the seller-facing projection.
func TestUser_PublicProfile(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()
	user := &User{ID: id, Name: "Jordan Seller", Email: "seller@example.com"}

	profile := user.PublicProfile()
	if profile.ID != id.Hex() {
		t.Errorf("ID: got %q", profile.ID)
	}
	if profile.Name != "Jordan Seller" || profile.Email != "seller@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}
