package service

import (
	"context"
	"testing"

	"practicehub/internal/repository"
	pkgerrors "practicehub/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProblemFixture(t *testing.T) (*ProblemService, *fakeProblemRepo, *fakeUserRepo, Identity) {
	t.Helper()
	problems := newFakeProblemRepo()
	users := newFakeUserRepo()
	caller := Identity{ID: primitive.NewObjectID()}
	_, err := users.Create(t.Context(), &repository.User{ID: caller.ID, Username: "solver"})
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	// fake assigns a fresh id; read it back
	seeded, err := users.GetByUsername(t.Context(), "solver")
	if err != nil {
		t.Fatalf("read seeded user failed: %v", err)
	}
	caller.ID = seeded.ID
	return NewProblemService(problems, users), problems, users, caller
}

func TestProblemServiceCreateStartsUnsolved(t *testing.T) {
	svc, problems, _, _ := newProblemFixture(t)

	id, err := svc.Create(t.Context(), CreateProblemInput{
		Name:           "Two Sum",
		Rating:         800,
		Link:           "https://example.com/two-sum",
		SubmissionLink: "https://example.com/two-sum/submission",
		Tags:           []string{"arrays", "hashing"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id.IsZero() {
		t.Fatalf("expected assigned id")
	}

	listed, err := problems.List(t.Context(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("unexpected problem count: %d", len(listed))
	}
	got := listed[0]
	if got.Solved {
		t.Fatalf("new problem must start unsolved")
	}
	if got.Name != "Two Sum" || got.Rating != 800 || len(got.Tags) != 2 {
		t.Fatalf("fields not persisted unchanged: %+v", got)
	}
}

func TestProblemServiceListByTag(t *testing.T) {
	svc, _, _, _ := newProblemFixture(t)

	inputs := []CreateProblemInput{
		{Name: "A", Rating: 800, Link: "https://x/a", SubmissionLink: "https://x/a/s", Tags: []string{"dp"}},
		{Name: "B", Rating: 900, Link: "https://x/b", SubmissionLink: "https://x/b/s", Tags: []string{"graphs", "dp"}},
		{Name: "C", Rating: 1000, Link: "https://x/c", SubmissionLink: "https://x/c/s", Tags: []string{"Greedy"}},
	}
	for _, input := range inputs {
		if _, err := svc.Create(t.Context(), input); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	matched, err := svc.List(t.Context(), "dp")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 dp problems, got %d", len(matched))
	}

	// tag matching is case-sensitive
	matched, err = svc.List(t.Context(), "greedy")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(matched) != 0 {
		t.Fatalf("expected no match for lowercased tag, got %d", len(matched))
	}
}

func TestProblemServiceSolve(t *testing.T) {
	svc, problems, users, caller := newProblemFixture(t)

	id, err := svc.Create(t.Context(), CreateProblemInput{
		Name: "A", Rating: 800, Link: "https://x/a", SubmissionLink: "https://x/a/s", Tags: []string{"dp"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Solve(t.Context(), id.Hex(), caller); err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	listed, _ := problems.List(t.Context(), "")
	if !listed[0].Solved {
		t.Fatalf("problem not marked solved")
	}

	solver, err := users.GetByID(t.Context(), caller.ID)
	if err != nil {
		t.Fatalf("get solver failed: %v", err)
	}
	if len(solver.SolvedProblems) != 1 || solver.SolvedProblems[0] != id {
		t.Fatalf("solve not tracked on user: %+v", solver.SolvedProblems)
	}

	// re-solving succeeds and stays tracked exactly once
	if err := svc.Solve(t.Context(), id.Hex(), caller); err != nil {
		t.Fatalf("re-solve failed: %v", err)
	}
	solver, _ = users.GetByID(t.Context(), caller.ID)
	if len(solver.SolvedProblems) != 1 {
		t.Fatalf("re-solve duplicated tracking: %+v", solver.SolvedProblems)
	}
}

func TestProblemServiceSolveUnknown(t *testing.T) {
	svc, problems, _, caller := newProblemFixture(t)

	cases := []struct {
		name string
		id   string
	}{
		{name: "missing id", id: primitive.NewObjectID().Hex()},
		{name: "malformed id", id: "not-hex"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Solve(t.Context(), tc.id, caller)
			if pkgerrors.GetCode(err) != pkgerrors.ProblemNotFound {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	count, _ := problems.Count(context.Background())
	if count != 0 {
		t.Fatalf("failed solve must not change state")
	}
}

func TestProblemServiceDeleteTwice(t *testing.T) {
	svc, _, _, _ := newProblemFixture(t)

	id, err := svc.Create(t.Context(), CreateProblemInput{
		Name: "A", Rating: 800, Link: "https://x/a", SubmissionLink: "https://x/a/s", Tags: []string{"dp"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(t.Context(), id.Hex()); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := svc.Delete(t.Context(), id.Hex()); pkgerrors.GetCode(err) != pkgerrors.ProblemNotFound {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}
