package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/places-service/internal/domain"
)

// PlaceRepository encapsulates place persistence. Create and Delete
// perform the dual write to the places table and the owner's place set
// inside a single transaction; no reader observes one half without the
// other.
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) error
	Update(ctx context.Context, place *domain.Place) error
	Delete(ctx context.Context, place *domain.Place) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Place, error)
}

type placeRepository struct {
	pool *pgxpool.Pool
}

// NewPlaceRepository instantiates repository.
func NewPlaceRepository(pool *pgxpool.Pool) PlaceRepository {
	return &placeRepository{pool: pool}
}

func (r *placeRepository) Create(ctx context.Context, place *domain.Place) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the owner row first so concurrent mutations of the same
	// place set serialize. Returns pgx.ErrNoRows if the creator is gone.
	ownerSet, err := lockOwnerSet(ctx, tx, place.CreatorID)
	if err != nil {
		return err
	}

	const insert = `
        INSERT INTO places (title, description, address, lat, lng, image_path, creator_user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		place.Title,
		place.Description,
		place.Address,
		place.Location.Lat,
		place.Location.Lng,
		place.ImagePath,
		place.CreatorID,
	).Scan(&place.ID, &place.CreatedAt, &place.UpdatedAt); err != nil {
		return err
	}

	ownerSet.Add(place.ID)
	if err := storeOwnerSet(ctx, tx, place.CreatorID, ownerSet); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *placeRepository) Update(ctx context.Context, place *domain.Place) error {
	const query = `
        UPDATE places SET title=$1, description=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		place.Title,
		place.Description,
		place.ID,
	).Scan(&place.UpdatedAt)
}

func (r *placeRepository) Delete(ctx context.Context, place *domain.Place) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	ownerSet, err := lockOwnerSet(ctx, tx, place.CreatorID)
	if err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM places WHERE id=$1`, place.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		// Lost a race with a concurrent delete; the set is untouched.
		return pgx.ErrNoRows
	}

	ownerSet.Remove(place.ID)
	if err := storeOwnerSet(ctx, tx, place.CreatorID, ownerSet); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	const query = `
        SELECT id, title, description, address, lat, lng, image_path, creator_user_id, created_at, updated_at
        FROM places WHERE id=$1`

	var place domain.Place
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Lat,
		&place.Location.Lng,
		&place.ImagePath,
		&place.CreatorID,
		&place.CreatedAt,
		&place.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Place, error) {
	const query = `
        SELECT id, title, description, address, lat, lng, image_path, creator_user_id, created_at, updated_at
        FROM places WHERE creator_user_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Place
	for rows.Next() {
		var place domain.Place
		if err := rows.Scan(
			&place.ID,
			&place.Title,
			&place.Description,
			&place.Address,
			&place.Location.Lat,
			&place.Location.Lng,
			&place.ImagePath,
			&place.CreatorID,
			&place.CreatedAt,
			&place.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, place)
	}
	return result, rows.Err()
}

func lockOwnerSet(ctx context.Context, tx pgx.Tx, ownerID string) (domain.PlaceSet, error) {
	var ids []string
	if err := tx.QueryRow(ctx, `SELECT place_ids FROM users WHERE id=$1 FOR UPDATE`, ownerID).Scan(&ids); err != nil {
		return domain.PlaceSet{}, err
	}
	return domain.NewPlaceSet(ids...), nil
}

func storeOwnerSet(ctx context.Context, tx pgx.Tx, ownerID string, set domain.PlaceSet) error {
	_, err := tx.Exec(ctx, `UPDATE users SET place_ids=$1, updated_at=NOW() WHERE id=$2`, set.IDs(), ownerID)
	return err
}
