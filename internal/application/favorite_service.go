package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	repo "github.com/oksasatya/opus-favorites/internal/domain/repository"
)

var favoritesAdded = expvar.NewInt("favorites_added_total")

// FavoriteService is the favorite ledger. Each (user, work) pair appears at
// most once.
type FavoriteService struct {
	Favorites repo.FavoriteRepository
	Catalog   repo.CatalogProvider
	Logger    *logrus.Logger
}

func NewFavoriteService(favorites repo.FavoriteRepository, catalog repo.CatalogProvider, logger *logrus.Logger) *FavoriteService {
	return &FavoriteService{Favorites: favorites, Catalog: catalog, Logger: logger}
}

// Add saves workID for userID. Adding a work twice is a silent no-op; created
// reports whether a new row was written. Title, genre and epoch are taken
// from the catalog at add time and never refreshed.
func (s *FavoriteService) Add(ctx context.Context, userID, workID int64) (fav *entity.Favorite, created bool, err error) {
	existing, err := s.Favorites.GetByUserAndWork(ctx, userID, workID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, false, err
	}

	detail, err := s.Catalog.GetWorkDetail(ctx, workID)
	if err != nil {
		return nil, false, err
	}

	f := &entity.Favorite{
		UserID:     userID,
		ComposerID: detail.Composer.ID,
		OpusWorkID: detail.Work.ID,
		Title:      detail.Work.Title,
		Genre:      detail.Work.Genre,
		Epoch:      detail.Composer.Epoch,
	}
	if f.OpusWorkID == 0 {
		f.OpusWorkID = workID
	}

	err = s.insert(ctx, f)
	if errors.Is(err, ErrDuplicateFavorite) {
		// Lost a race with a concurrent add of the same pair.
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"user_id": userID, "work_id": workID}).Debug("duplicate favorite ignored")
		}
		existing, gErr := s.Favorites.GetByUserAndWork(ctx, userID, workID)
		if gErr != nil {
			return nil, false, gErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	favoritesAdded.Add(1)
	return f, true, nil
}

func (s *FavoriteService) insert(ctx context.Context, f *entity.Favorite) error {
	err := s.Favorites.Create(ctx, f)
	if errors.Is(err, repo.ErrConflict) {
		return fmt.Errorf("%w: %w", ErrDuplicateFavorite, err)
	}
	return err
}

// Remove deletes a favorite owned by userID. A favorite that does not exist
// and one that belongs to someone else both yield ErrNotFound.
func (s *FavoriteService) Remove(ctx context.Context, favoriteID, userID int64) error {
	if err := s.Favorites.DeleteOwned(ctx, favoriteID, userID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "favorite_id": favoriteID}).Info("favorite removed")
	}
	return nil
}

// List returns the caller's favorites only.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]entity.Favorite, error) {
	return s.Favorites.ListByUser(ctx, userID)
}
