package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	repo "github.com/oksasatya/opus-favorites/internal/domain/repository"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

// CredentialService is the credential store: account creation, password
// verification and account removal.
type CredentialService struct {
	Users    repo.UserRepository
	Sessions repo.SessionRepository
	Logger   *logrus.Logger
}

func NewCredentialService(users repo.UserRepository, sessions repo.SessionRepository, logger *logrus.Logger) *CredentialService {
	return &CredentialService{Users: users, Sessions: sessions, Logger: logger}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Signup stores a new user. Uniqueness is left to the database; a violated
// constraint comes back as *DuplicateCredentialError. Blank fields and
// passwords longer than bcrypt accepts come back as *InvalidInputError.
func (s *CredentialService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	switch {
	case username == "":
		return nil, &InvalidInputError{Field: "username", Reason: "is required"}
	case email == "":
		return nil, &InvalidInputError{Field: "email", Reason: "is required"}
	}

	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, &InvalidInputError{Field: "password", Reason: fmt.Sprintf("must be at most %d bytes long", helpers.MaxPasswordBytes)}
	}
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		var conflict *repo.ConflictError
		if errors.As(err, &conflict) {
			return nil, &DuplicateCredentialError{Field: credentialField(conflict.Constraint)}
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user signed up")
	}
	return u, nil
}

func credentialField(constraint string) string {
	switch {
	case strings.Contains(constraint, "email"):
		return "email"
	case strings.Contains(constraint, "username"):
		return "username"
	default:
		return "username or email"
	}
}

// Authenticate returns ErrInvalidCredentials for both an unknown username and
// a wrong password.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		helpers.BurnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// DeleteAccount removes the user (favorites cascade) and revokes every
// session that still points at it.
func (s *CredentialService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	if s.Sessions != nil {
		if err := s.Sessions.DeleteAllForUser(ctx, userID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("revoke sessions failed")
		}
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", userID).Info("user deleted")
	}
	return nil
}
