package service

import (
	"errors"
	"fmt"
	"time"

	pkgerrors "practicehub/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultTokenTTL = 24 * time.Hour

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID      primitive.ObjectID
	IsAdmin bool
}

// AuthService issues and verifies the signed bearer credentials.
type AuthService struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(secret, issuer string, tokenTTL time.Duration) *AuthService {
	if tokenTTL == 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		secret:   []byte(secret),
		issuer:   issuer,
		tokenTTL: tokenTTL,
	}
}

type tokenClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Issue signs a time-bound token carrying the user id and privilege flag.
func (s *AuthService) Issue(userID primitive.ObjectID, isAdmin bool) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, pkgerrors.New(pkgerrors.TokenGenerationFailed)
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := tokenClaims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, pkgerrors.Wrap(fmt.Errorf("sign token failed: %w", err), pkgerrors.TokenGenerationFailed)
	}
	return raw, expiresAt, nil
}

// Authenticate verifies a raw token and extracts the caller identity.
func (s *AuthService) Authenticate(raw string) (Identity, error) {
	if raw == "" || len(s.secret) == 0 {
		return Identity{}, pkgerrors.New(pkgerrors.TokenInvalid)
	}

	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, pkgerrors.New(pkgerrors.TokenExpired)
		}
		return Identity{}, pkgerrors.New(pkgerrors.TokenInvalid)
	}
	if !parsed.Valid {
		return Identity{}, pkgerrors.New(pkgerrors.TokenInvalid)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return Identity{}, pkgerrors.New(pkgerrors.TokenInvalid)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return Identity{}, pkgerrors.New(pkgerrors.TokenInvalid)
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return Identity{}, pkgerrors.New(pkgerrors.TokenInvalid)
	}

	return Identity{ID: userID, IsAdmin: claims.IsAdmin}, nil
}
