package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSanitizeDropsPasswordAndFormatsTimestamps(t *testing.T) {
	id := primitive.NewObjectID()
	createdAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	lastLogin := time.Date(2026, 8, 20, 18, 45, 12, 500*int(time.Millisecond), time.UTC)

	u := &User{
		ID:           id,
		Email:        "a@b.com",
		PasswordHash: "$2a$12$notarealhash",
		Name:         "Ann",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
		LastLogin:    &lastLogin,
	}

	s := u.Sanitize()
	assert.Equal(t, id.Hex(), s.ID)
	assert.Equal(t, "a@b.com", s.Email)
	assert.Equal(t, "Ann", s.Name)
	assert.Equal(t, "2026-08-01T09:30:00.000Z", s.CreatedAt)
	require.NotNil(t, s.LastLogin)
	assert.Equal(t, "2026-08-20T18:45:12.500Z", *s.LastLogin)

	payload, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), "notarealhash")
}

func TestSanitizeNeverLoggedIn(t *testing.T) {
	u := &User{
		ID:        primitive.NewObjectID(),
		Email:     "a@b.com",
		Name:      "Ann",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	s := u.Sanitize()
	assert.Nil(t, s.LastLogin)

	payload, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"lastLogin":null`)
}

func TestSanitizeNormalizesZoneToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	u := &User{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, zone),
		UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, zone),
	}

	s := u.Sanitize()
	assert.Equal(t, "2026-08-01T10:00:00.000Z", s.CreatedAt)
}
