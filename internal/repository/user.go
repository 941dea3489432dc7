package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// User is a registered account document. The password field holds a bcrypt
// hash, never the raw secret.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username       string               `bson:"username" json:"username"`
	PasswordHash   string               `bson:"password" json:"-"`
	IsAdmin        bool                 `bson:"isAdmin" json:"isAdmin"`
	SolvedProblems []primitive.ObjectID `bson:"solvedProblems" json:"solvedProblems"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
}

// ProfileUpdate carries the optional fields of a partial profile update.
// Nil means "leave unchanged".
type ProfileUpdate struct {
	Username     *string
	PasswordHash *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddSolvedProblem(ctx context.Context, userID, problemID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// MongoUserRepository implements UserRepository on the document store.
type MongoUserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository bound to the store.
func NewUserRepository(store *Store) UserRepository {
	return &MongoUserRepository{store: store}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *User) (primitive.ObjectID, error) {
	if user == nil {
		return primitive.NilObjectID, errors.New("user is nil")
	}
	if user.SolvedProblems == nil {
		user.SolvedProblems = []primitive.ObjectID{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := r.store.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrUsernameExists
		}
		return primitive.NilObjectID, fmt.Errorf("insert user failed: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	user.ID = id
	return id, nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.store.users().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user failed: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial update; only non-nil fields are written.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) error {
	set := bson.M{}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.store.users().UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("update user failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.store.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddSolvedProblem records problemID in the user's solved set. $addToSet
// keeps re-solves idempotent.
func (r *MongoUserRepository) AddSolvedProblem(ctx context.Context, userID, problemID primitive.ObjectID) error {
	result, err := r.store.users().UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"solvedProblems": problemID},
	})
	if err != nil {
		return fmt.Errorf("record solved problem failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.store.users().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users failed: %w", err)
	}
	return count, nil
}
