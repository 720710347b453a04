package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	"github.com/oksasatya/opus-favorites/internal/domain/repository"
)

type FavoriteRepository struct {
	db DB
}

func NewFavoriteRepository(db DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) GetByUserAndWork(ctx context.Context, userID, workID int64) (*entity.Favorite, error) {
	f := &entity.Favorite{}

	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, composer_id, opus_work_id, title, genre, epoch, created_at
		FROM favorites
		WHERE user_id = $1 AND opus_work_id = $2
	`, userID, workID)

	if err := row.Scan(&f.ID, &f.UserID, &f.ComposerID, &f.OpusWorkID, &f.Title, &f.Genre, &f.Epoch, &f.CreatedAt); err != nil {
		return nil, translateErr(err)
	}
	return f, nil
}

// Create inserts the favorite. A concurrent insert for the same
// (user_id, opus_work_id) surfaces as a *repository.ConflictError.
func (r *FavoriteRepository) Create(ctx context.Context, f *entity.Favorite) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO favorites (user_id, composer_id, opus_work_id, title, genre, epoch)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, f.UserID, f.ComposerID, f.OpusWorkID, f.Title, f.Genre, f.Epoch)
		return translateErr(row.Scan(&f.ID, &f.CreatedAt))
	})
}

func (r *FavoriteRepository) DeleteOwned(ctx context.Context, favoriteID, userID int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, favoriteID, userID)
		if err != nil {
			return translateErr(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// ListByUser returns the user's favorites, newest first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Favorite, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, composer_id, opus_work_id, title, genre, epoch, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := make([]entity.Favorite, 0)
	for rows.Next() {
		var f entity.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ComposerID, &f.OpusWorkID, &f.Title, &f.Genre, &f.Epoch, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
