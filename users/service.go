// Package users implements account registration and credential verification
// for the scraps backend.
package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-scraps/apperr"
	"github.com/goliatone/go-scraps/models"
)

const bcryptCost = 10

// TokenSigner issues a signed bearer token for a user uid. Implemented by
// auth.TokenManager.
type TokenSigner interface {
	Sign(uid string) (string, error)
}

// Service handles registration, username availability, and authentication.
// Password hashing happens here, as an explicit pre-persist step, never as a
// storage-engine hook.
type Service struct {
	repo   Repository
	signer TokenSigner
}

// NewService creates a Service.
func NewService(repo Repository, signer TokenSigner) *Service {
	return &Service{repo: repo, signer: signer}
}

// Register creates a new account. A taken username yields Conflict. The
// returned user carries its assigned uid; the password hash is never exposed
// through serialization.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := s.available(ctx, username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Available reports whether username is free; a taken name yields Conflict.
func (s *Service) Available(ctx context.Context, username string) error {
	return s.available(ctx, username)
}

func (s *Service) available(ctx context.Context, username string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return apperr.Conflict("Username")
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return apperr.Internal(err)
	}
}

// Authenticate verifies username/password and returns a signed bearer token.
// An unknown username yields NotFound; a wrong password yields Forbidden.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", apperr.NotFound()
		}
		return "", apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperr.Forbidden()
	}

	token, err := s.signer.Sign(user.UID)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}
