package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// isoFormat matches the wire format the frontend expects for timestamps
// (UTC, millisecond precision, trailing Z).
const isoFormat = "2006-01-02T15:04:05.000Z07:00"

// User is the stored shape of a users document.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"` // lowercased before storage
	PasswordHash string             `bson:"password"`
	Name         string             `bson:"name"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	LastLogin    *time.Time         `bson:"lastLogin,omitempty"`
}

// Sanitized is the only representation of a user ever returned to a client:
// the stored record minus the password hash, with the id in its hex form and
// timestamps serialized to ISO-8601 strings.
type Sanitized struct {
	ID        string  `json:"_id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	LastLogin *string `json:"lastLogin"`
}

// Sanitize strips the password hash and normalizes timestamps for transport.
func (u *User) Sanitize() Sanitized {
	s := Sanitized{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.UTC().Format(isoFormat),
		UpdatedAt: u.UpdatedAt.UTC().Format(isoFormat),
	}
	if u.LastLogin != nil {
		lastLogin := u.LastLogin.UTC().Format(isoFormat)
		s.LastLogin = &lastLogin
	}
	return s
}
