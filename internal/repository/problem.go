package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Problem is a practice problem document.
// Solved is written explicitly at creation so the strict-equality stats
// filters partition the collection completely.
type Problem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Rating         float64            `bson:"rating" json:"rating"`
	Link           string             `bson:"link" json:"link"`
	SubmissionLink string             `bson:"submissionLink" json:"submissionLink"`
	Tags           []string           `bson:"tags" json:"tags"`
	Solved         bool               `bson:"solved" json:"solved"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProblemRepository defines persistence operations for problems.
type ProblemRepository interface {
	Create(ctx context.Context, problem *Problem) (primitive.ObjectID, error)
	List(ctx context.Context, tag string) ([]Problem, error)
	MarkSolved(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountSolved(ctx context.Context) (int64, error)
	CountUnsolved(ctx context.Context) (int64, error)
}

// MongoProblemRepository implements ProblemRepository on the document store.
type MongoProblemRepository struct {
	store *Store
}

// NewProblemRepository creates a problem repository bound to the store.
func NewProblemRepository(store *Store) ProblemRepository {
	return &MongoProblemRepository{store: store}
}

func (r *MongoProblemRepository) Create(ctx context.Context, problem *Problem) (primitive.ObjectID, error) {
	if problem == nil {
		return primitive.NilObjectID, errors.New("problem is nil")
	}
	if problem.CreatedAt.IsZero() {
		problem.CreatedAt = time.Now().UTC()
	}

	result, err := r.store.problems().InsertOne(ctx, problem)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert problem failed: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	problem.ID = id
	return id, nil
}

// List returns all problems, or only those whose tag list contains tag.
// Matching a scalar against an array field is a membership test in the store.
func (r *MongoProblemRepository) List(ctx context.Context, tag string) ([]Problem, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = tag
	}

	cursor, err := r.store.problems().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find problems failed: %w", err)
	}
	defer cursor.Close(ctx)

	problems := make([]Problem, 0)
	if err := cursor.All(ctx, &problems); err != nil {
		return nil, fmt.Errorf("decode problems failed: %w", err)
	}
	return problems, nil
}

func (r *MongoProblemRepository) MarkSolved(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.store.problems().UpdateByID(ctx, id, bson.M{"$set": bson.M{"solved": true}})
	if err != nil {
		return fmt.Errorf("mark problem solved failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProblemNotFound
	}
	return nil
}

func (r *MongoProblemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.store.problems().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete problem failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProblemNotFound
	}
	return nil
}

func (r *MongoProblemRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *MongoProblemRepository) CountSolved(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"solved": true})
}

// CountUnsolved counts problems not marked solved. The $ne filter also covers
// documents created before the service wrote the solved field explicitly.
func (r *MongoProblemRepository) CountUnsolved(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"solved": bson.M{"$ne": true}})
}

func (r *MongoProblemRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.store.problems().CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count problems failed: %w", err)
	}
	return count, nil
}
