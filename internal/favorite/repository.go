// AngelaMos | 2026
// repository.go

package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentloop/rentloop-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, fav *Favorite) error
	Delete(ctx context.Context, tenantID, propertyID string) error
	ListPropertyIDsByTenant(
		ctx context.Context,
		tenantID string,
		limit, offset int,
	) ([]string, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, fav *Favorite) error {
	query := `
		INSERT INTO favorites (id, tenant_id, property_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &fav.CreatedAt, query,
		fav.ID,
		fav.TenantID,
		fav.PropertyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create favorite: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create favorite: %w", err)
	}

	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	tenantID, propertyID string,
) error {
	query := `
		DELETE FROM favorites
		WHERE tenant_id = $1 AND property_id = $2`

	result, err := r.db.ExecContext(ctx, query, tenantID, propertyID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete favorite: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPropertyIDsByTenant(
	ctx context.Context,
	tenantID string,
	limit, offset int,
) ([]string, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM favorites WHERE tenant_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, tenantID); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	query := `
		SELECT property_id
		FROM favorites
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, tenantID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}

	return ids, total, nil
}
