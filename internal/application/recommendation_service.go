package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	repo "github.com/oksasatya/opus-favorites/internal/domain/repository"
)

type RecommendationService struct {
	Favorites repo.FavoriteRepository
	Catalog   repo.CatalogProvider
	Logger    *logrus.Logger
}

func NewRecommendationService(favorites repo.FavoriteRepository, catalog repo.CatalogProvider, logger *logrus.Logger) *RecommendationService {
	return &RecommendationService{Favorites: favorites, Catalog: catalog, Logger: logger}
}

type Recommendation struct {
	Epoch     string            `json:"epoch"`
	Composers []entity.Composer `json:"composers"`
}

// RecommendFor looks up composers from the epoch the user favorites most.
func (s *RecommendationService) RecommendFor(ctx context.Context, userID int64) (*Recommendation, error) {
	favs, err := s.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	epoch, ok := SelectEpoch(favs)
	if !ok {
		return nil, ErrNoFavorites
	}
	composers, err := s.Catalog.ListComposersByEpoch(ctx, epoch)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "epoch": epoch, "composers": len(composers)}).Debug("recommendation built")
	}
	return &Recommendation{Epoch: epoch, Composers: composers}, nil
}

// SelectEpoch returns the most frequent non-blank epoch. Ties go to the epoch
// holding the most recently added favorite.
func SelectEpoch(favs []entity.Favorite) (string, bool) {
	type tally struct {
		count  int
		latest entity.Favorite
	}
	tallies := make(map[string]*tally)
	for _, f := range favs {
		epoch := strings.TrimSpace(f.Epoch)
		if epoch == "" {
			continue
		}
		t, ok := tallies[epoch]
		if !ok {
			tallies[epoch] = &tally{count: 1, latest: f}
			continue
		}
		t.count++
		if newer(f, t.latest) {
			t.latest = f
		}
	}

	best := ""
	var bestT *tally
	for epoch, t := range tallies {
		if bestT == nil || t.count > bestT.count || (t.count == bestT.count && newer(t.latest, bestT.latest)) {
			best, bestT = epoch, t
		}
	}
	return best, bestT != nil
}

func newer(a, b entity.Favorite) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
