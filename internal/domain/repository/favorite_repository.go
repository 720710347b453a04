package repository

import (
	"context"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
)

// FavoriteRepository persists favorites. Mutations run inside a single
// transaction each.
type FavoriteRepository interface {
	GetByUserAndWork(ctx context.Context, userID, workID int64) (*entity.Favorite, error)
	Create(ctx context.Context, f *entity.Favorite) error
	// DeleteOwned removes the favorite only when it belongs to userID.
	DeleteOwned(ctx context.Context, favoriteID, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]entity.Favorite, error)
}
