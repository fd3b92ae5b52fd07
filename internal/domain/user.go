package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Email is the identity key; Profile is the
// registration payload kept verbatim and never interpreted by the core.
type User struct {
	ID        uuid.UUID       `json:"_id"`
	Email     string          `json:"email"`
	Profile   json.RawMessage `json:"profile,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CheckIdentity validates an email used as an identity. The email is taken
// exactly as given: it is never trimmed or case-folded, and only a blank or
// unstorable value is rejected.
func CheckIdentity(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !storable(email) {
		return ErrInvalidEmail
	}
	return nil
}

// NewUser builds a user for email with the given opaque profile.
// A nil profile is stored as an empty JSON object.
func NewUser(email string, profile json.RawMessage, now time.Time) (*User, error) {
	if err := CheckIdentity(email); err != nil {
		return nil, err
	}
	if len(profile) == 0 {
		profile = json.RawMessage(`{}`)
	}
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Profile:   profile,
		CreatedAt: now.UTC(),
	}, nil
}
