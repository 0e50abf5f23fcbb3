package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userboard/userboard/internal/database"
)

const collectionName = "users"

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles user data persistence in the users collection
type Repository struct {
	pool *database.Pool
}

func NewRepository(pool *database.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.pool.Collection(ctx, collectionName)
}

// Create inserts a new user and returns it with the assigned id.
// The email must already be lowercased by the caller.
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	result, err := coll.InsertOne(ctx, u)
	if err != nil {
		// A unique index on email, if deployed, reports the duplicate the
		// existence check raced past.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return u, nil
}

// GetByEmail retrieves a user by email. Lookup is case-insensitive because
// stored emails are lowercased.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	u := new(User)
	err = coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByID retrieves a user by its object id
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	u := new(User)
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// RecordLogin sets the lastLogin and updatedAt timestamps for a user
func (r *Repository) RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLogin": at, "updatedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// List returns all users ordered newest-created first.
// The password field is excluded by projection and never leaves the database.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// CountUsers returns the total number of registered users
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountCreatedSince returns the number of users created at or after t
func (r *Repository) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	return r.countSince(ctx, "createdAt", t)
}

// CountActiveSince returns the number of users whose last login is at or after t
func (r *Repository) CountActiveSince(ctx context.Context, t time.Time) (int64, error) {
	return r.countSince(ctx, "lastLogin", t)
}

func (r *Repository) countSince(ctx context.Context, field string, t time.Time) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}

	count, err := coll.CountDocuments(ctx, bson.M{field: bson.M{"$gte": t}})
	if err != nil {
		return 0, fmt.Errorf("failed to count users by %s: %w", field, err)
	}
	return count, nil
}
