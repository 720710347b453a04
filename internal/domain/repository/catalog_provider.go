package repository

import (
	"context"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
)

// CatalogProvider is the external composer/work metadata source.
// Implementations return ErrCatalogUnavailable on transport or decoding
// failures and never retry or cache.
type CatalogProvider interface {
	SearchComposers(ctx context.Context, query string) ([]entity.Composer, error)
	ListWorks(ctx context.Context, composerID int64) (*entity.Composer, []entity.Work, error)
	GetWorkDetail(ctx context.Context, workID int64) (*entity.WorkDetail, error)
	ListComposersByEpoch(ctx context.Context, epoch string) ([]entity.Composer, error)
}
