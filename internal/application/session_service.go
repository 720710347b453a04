package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	repo "github.com/oksasatya/opus-favorites/internal/domain/repository"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

// SessionService is the session manager. A client holds a signed token that
// carries an opaque session id; the store maps that id to a user id.
//
// Anonymous -> Authenticated on Login; Authenticated -> Anonymous on Logout or
// when the stored session expires or disappears.
type SessionService struct {
	Store  repo.SessionRepository
	Users  repo.UserRepository
	Signer *helpers.SessionSigner
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewSessionService(store repo.SessionRepository, users repo.UserRepository, signer *helpers.SessionSigner, ttl time.Duration, logger *logrus.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{Store: store, Users: users, Signer: signer, TTL: ttl, Logger: logger}
}

// Login binds the user to a fresh session id and returns the token for the
// client. Any session referenced by currentToken is dropped first.
func (s *SessionService) Login(ctx context.Context, u *entity.User, currentToken string) (string, error) {
	if currentToken != "" {
		if err := s.Logout(ctx, currentToken); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("drop previous session failed")
		}
	}
	sid := uuid.NewString()
	if err := s.Store.Create(ctx, sid, u.ID, s.TTL); err != nil {
		return "", err
	}
	tok, _, err := s.Signer.Sign(sid, s.TTL)
	if err != nil {
		_ = s.Store.Delete(ctx, sid)
		return "", err
	}
	return tok, nil
}

// Logout is a no-op for empty or unreadable tokens.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sid, err := s.Signer.Parse(token)
	if err != nil {
		return nil
	}
	return s.Store.Delete(ctx, sid)
}

// ResolveCurrentUser returns (nil, nil) when no token is presented and
// ErrUnauthenticated when the token is invalid, expired, or points at a
// session or user that no longer exists.
func (s *SessionService) ResolveCurrentUser(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	sid, err := s.Signer.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	uid, err := s.Store.Get(ctx, sid)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, uid)
	if errors.Is(err, repo.ErrNotFound) {
		_ = s.Store.Delete(ctx, sid)
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
