package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that owns portfolios, transactions and alerts. The
// password hash never leaves the server (json:"-").
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewUser creates a user with a lowercased email.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}

// Validate checks structural invariants before persisting.
func (u *User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}
