package service

import (
	"context"
	"sync"

	"practicehub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeProblemRepo is an in-memory ProblemRepository.
type fakeProblemRepo struct {
	mu       sync.Mutex
	problems []repository.Problem
	failWith error
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{}
}

func (f *fakeProblemRepo) Create(_ context.Context, problem *repository.Problem) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return primitive.NilObjectID, f.failWith
	}
	problem.ID = primitive.NewObjectID()
	f.problems = append(f.problems, *problem)
	return problem.ID, nil
}

func (f *fakeProblemRepo) List(_ context.Context, tag string) ([]repository.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	result := make([]repository.Problem, 0)
	for _, p := range f.problems {
		if tag == "" || containsTag(p.Tags, tag) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProblemRepo) MarkSolved(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.problems {
		if f.problems[i].ID == id {
			f.problems[i].Solved = true
			return nil
		}
	}
	return repository.ErrProblemNotFound
}

func (f *fakeProblemRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.problems {
		if f.problems[i].ID == id {
			f.problems = append(f.problems[:i], f.problems[i+1:]...)
			return nil
		}
	}
	return repository.ErrProblemNotFound
}

func (f *fakeProblemRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.problems)), nil
}

func (f *fakeProblemRepo) CountSolved(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.problems {
		if p.Solved {
			count++
		}
	}
	return count, nil
}

func (f *fakeProblemRepo) CountUnsolved(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.problems {
		if !p.Solved {
			count++
		}
	}
	return count, nil
}

func containsTag(tags []string, tag string) bool {
	for _, item := range tags {
		if item == tag {
			return true
		}
	}
	return false
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*repository.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*repository.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *repository.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return primitive.NilObjectID, repository.ErrUsernameExists
		}
	}
	user.ID = primitive.NewObjectID()
	if user.SolvedProblems == nil {
		user.SolvedProblems = []primitive.ObjectID{}
	}
	clone := *user
	f.users[user.ID] = &clone
	return user.ID, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, update repository.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if update.Username != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Username == *update.Username {
				return repository.ErrUsernameExists
			}
		}
		user.Username = *update.Username
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) AddSolvedProblem(_ context.Context, userID, problemID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	for _, existing := range user.SolvedProblems {
		if existing == problemID {
			return nil
		}
	}
	user.SolvedProblems = append(user.SolvedProblems, problemID)
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}
