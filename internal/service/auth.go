package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/movievault/backend/internal/config"
	"github.com/movievault/backend/internal/db"
	"github.com/movievault/backend/internal/model"
)

// CredentialVerifier resolves a username/password pair to an identity.
// Both rejection reasons surface as ErrInvalidCredentials so callers
// cannot tell a missing user from a wrong password.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*model.User, error)
}

// TokenAuthorizer resolves a bearer token to a live identity. The claim
// subject is always re-resolved against the directory; a token issued to
// a since-deleted user fails even before its expiry.
type TokenAuthorizer interface {
	Authorize(ctx context.Context, token string) (*model.User, error)
}

type AuthService struct {
	directory UserDirectory
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(directory UserDirectory, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil || tokenTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid TOKEN_TTL", ErrMisconfigured)
	}

	return &AuthService{
		directory: directory,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

// Login verifies the credentials and issues a token for the identity.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) Verify(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.directory.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: unknown username", ErrInvalidCredentials)
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: password mismatch", ErrInvalidCredentials)
	}

	return sanitize(user), nil
}

// IssueToken signs an HS256 token for the identity. Pure function of
// (identity, clock, secret); nothing is persisted.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) Authorize(ctx context.Context, tokenStr string) (*model.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	user, err := s.directory.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return sanitize(user), nil
}

// sanitize strips the digest before the identity leaves the auth layer.
func sanitize(user *model.User) *model.User {
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
