package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/opus-favorites/internal/domain/repository"
)

var (
	ErrDuplicateCredential = errors.New("duplicate credential")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCatalogUnavailable  = repository.ErrCatalogUnavailable
	ErrNotFound            = repository.ErrNotFound
	ErrDuplicateFavorite   = errors.New("duplicate favorite")
	ErrNoFavorites         = errors.New("no favorites")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidInput        = errors.New("invalid input")
)

// InvalidInputError rejects a field that passed form binding but is still
// unusable, such as a blank username or a password bcrypt cannot hash.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// DuplicateCredentialError names the signup field that collided.
type DuplicateCredentialError struct {
	Field string
}

func (e *DuplicateCredentialError) Error() string {
	return fmt.Sprintf("%s already taken", e.Field)
}

func (e *DuplicateCredentialError) Is(target error) bool { return target == ErrDuplicateCredential }
