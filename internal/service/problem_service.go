package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"practicehub/internal/repository"
	pkgerrors "practicehub/pkg/errors"
	"practicehub/pkg/utils/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProblemService implements the problem catalog operations.
type ProblemService struct {
	problems repository.ProblemRepository
	users    repository.UserRepository
}

// NewProblemService creates a new ProblemService.
func NewProblemService(problems repository.ProblemRepository, users repository.UserRepository) *ProblemService {
	return &ProblemService{problems: problems, users: users}
}

// CreateProblemInput represents input for problem creation.
type CreateProblemInput struct {
	Name           string
	Rating         float64
	Link           string
	SubmissionLink string
	Tags           []string
}

// Create persists a new, unsolved problem.
func (s *ProblemService) Create(ctx context.Context, input CreateProblemInput) (primitive.ObjectID, error) {
	problem := &repository.Problem{
		Name:           input.Name,
		Rating:         input.Rating,
		Link:           input.Link,
		SubmissionLink: input.SubmissionLink,
		Tags:           input.Tags,
		Solved:         false,
	}

	id, err := s.problems.Create(ctx, problem)
	if err != nil {
		return primitive.NilObjectID, pkgerrors.Wrap(fmt.Errorf("create problem failed: %w", err), pkgerrors.ProblemCreateFailed)
	}
	return id, nil
}

// List returns all problems, or only those carrying the given tag.
func (s *ProblemService) List(ctx context.Context, tag string) ([]repository.Problem, error) {
	problems, err := s.problems.List(ctx, tag)
	if err != nil {
		return nil, pkgerrors.Wrap(fmt.Errorf("list problems failed: %w", err), pkgerrors.DatabaseError)
	}
	return problems, nil
}

// Solve marks a problem solved and records it in the caller's solved set.
// Re-solving an already-solved problem succeeds without further effect.
func (s *ProblemService) Solve(ctx context.Context, rawID string, caller Identity) error {
	problemID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return pkgerrors.New(pkgerrors.ProblemNotFound)
	}

	if err := s.problems.MarkSolved(ctx, problemID); err != nil {
		if stderrors.Is(err, repository.ErrProblemNotFound) {
			return pkgerrors.New(pkgerrors.ProblemNotFound)
		}
		return pkgerrors.Wrap(fmt.Errorf("mark solved failed: %w", err), pkgerrors.DatabaseError)
	}

	// Per-user solve tracking is best effort: the problem is already marked,
	// so a tracking failure must not fail the request.
	if err := s.users.AddSolvedProblem(ctx, caller.ID, problemID); err != nil {
		logger.Warn(ctx, "record solved problem failed",
			zap.String("problem_id", problemID.Hex()),
			zap.String("user_id", caller.ID.Hex()),
			zap.Error(err),
		)
	}
	return nil
}

// Delete removes a problem.
func (s *ProblemService) Delete(ctx context.Context, rawID string) error {
	problemID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return pkgerrors.New(pkgerrors.ProblemNotFound)
	}

	if err := s.problems.Delete(ctx, problemID); err != nil {
		if stderrors.Is(err, repository.ErrProblemNotFound) {
			return pkgerrors.New(pkgerrors.ProblemNotFound)
		}
		return pkgerrors.Wrap(fmt.Errorf("delete problem failed: %w", err), pkgerrors.ProblemDeleteFailed)
	}
	return nil
}
