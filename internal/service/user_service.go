package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"practicehub/internal/repository"
	pkgerrors "practicehub/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserService implements registration, login and account management.
type UserService struct {
	users   repository.UserRepository
	auth    *AuthService
	limiter *LoginLimiter
}

// NewUserService creates a new UserService. The limiter may be nil.
func NewUserService(users repository.UserRepository, auth *AuthService, limiter *LoginLimiter) *UserService {
	return &UserService{users: users, auth: auth, limiter: limiter}
}

// RegisterInput represents input for user registration.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput represents input for user login.
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// TokenResult is the credential issued on successful login.
type TokenResult struct {
	Token     string
	ExpiresAt time.Time
}

// UpdateProfileInput carries the optional profile fields; nil leaves a field
// unchanged.
type UpdateProfileInput struct {
	Username *string
	Password *string
}

// Register creates a new non-admin user with an empty solved set.
func (s *UserService) Register(ctx context.Context, input RegisterInput) error {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return pkgerrors.New(pkgerrors.UsernameAlreadyExists)
	} else if !stderrors.Is(err, repository.ErrUserNotFound) {
		return pkgerrors.Wrap(fmt.Errorf("check username failed: %w", err), pkgerrors.DatabaseError)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return pkgerrors.Wrap(fmt.Errorf("hash password failed: %w", err), pkgerrors.InternalServerError)
	}

	user := &repository.User{
		Username:     input.Username,
		PasswordHash: string(passwordHash),
		IsAdmin:      false,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		// The unique index closes the race the pre-check leaves open.
		if stderrors.Is(err, repository.ErrUsernameExists) {
			return pkgerrors.New(pkgerrors.UsernameAlreadyExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("create user failed: %w", err), pkgerrors.DatabaseError)
	}
	return nil
}

// Login verifies credentials and issues a signed token. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input LoginInput) (TokenResult, error) {
	if err := s.limiter.Check(ctx, input.Username, input.IP); err != nil {
		return TokenResult{}, err
	}

	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			s.limiter.RecordFailure(ctx, input.Username, input.IP)
			return TokenResult{}, pkgerrors.New(pkgerrors.InvalidCredentials)
		}
		return TokenResult{}, pkgerrors.Wrap(fmt.Errorf("get user failed: %w", err), pkgerrors.DatabaseError)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.limiter.RecordFailure(ctx, input.Username, input.IP)
		return TokenResult{}, pkgerrors.New(pkgerrors.InvalidCredentials)
	}

	s.limiter.Clear(ctx, input.Username, input.IP)

	token, expiresAt, err := s.auth.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return TokenResult{}, err
	}
	return TokenResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Delete removes a user. Only the user themselves or an admin may delete.
func (s *UserService) Delete(ctx context.Context, rawID string, caller Identity) error {
	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return pkgerrors.New(pkgerrors.UserNotFound)
	}

	if userID != caller.ID && !caller.IsAdmin {
		return pkgerrors.New(pkgerrors.NotResourceOwner)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return pkgerrors.New(pkgerrors.UserNotFound)
		}
		return pkgerrors.Wrap(fmt.Errorf("delete user failed: %w", err), pkgerrors.DatabaseError)
	}
	return nil
}

// UpdateProfile applies a partial update to username and/or password.
// A username change is re-checked for uniqueness. Only the user themselves
// or an admin may update.
func (s *UserService) UpdateProfile(ctx context.Context, rawID string, caller Identity, input UpdateProfileInput) error {
	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return pkgerrors.New(pkgerrors.UserNotFound)
	}

	if userID != caller.ID && !caller.IsAdmin {
		return pkgerrors.New(pkgerrors.NotResourceOwner)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return pkgerrors.New(pkgerrors.UserNotFound)
		}
		return pkgerrors.Wrap(fmt.Errorf("get user failed: %w", err), pkgerrors.DatabaseError)
	}

	update := repository.ProfileUpdate{}
	if input.Username != nil {
		existing, err := s.users.GetByUsername(ctx, *input.Username)
		if err == nil && existing.ID != userID {
			return pkgerrors.New(pkgerrors.UsernameAlreadyExists)
		}
		if err != nil && !stderrors.Is(err, repository.ErrUserNotFound) {
			return pkgerrors.Wrap(fmt.Errorf("check username failed: %w", err), pkgerrors.DatabaseError)
		}
		update.Username = input.Username
	}
	if input.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return pkgerrors.Wrap(fmt.Errorf("hash password failed: %w", err), pkgerrors.InternalServerError)
		}
		hash := string(passwordHash)
		update.PasswordHash = &hash
	}

	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrUserNotFound):
			return pkgerrors.New(pkgerrors.UserNotFound)
		case stderrors.Is(err, repository.ErrUsernameExists):
			return pkgerrors.New(pkgerrors.UsernameAlreadyExists)
		default:
			return pkgerrors.Wrap(fmt.Errorf("update user failed: %w", err), pkgerrors.DatabaseError)
		}
	}
	return nil
}
