// AngelaMos | 2026
// repository.go

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentloop/rentloop-api/internal/core"
)

const reviewColumns = `
	id, author_id, target_property_id, target_user_id, rating, comment,
	created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, rev *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	Delete(ctx context.Context, id string) error
	ListByProperty(
		ctx context.Context,
		propertyID string,
		params ListParams,
	) ([]Review, int, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params ListParams,
	) ([]Review, int, error)
	SummaryForProperty(
		ctx context.Context,
		propertyID string,
	) (*RatingSummary, error)
	SummaryForUser(ctx context.Context, userID string) (*RatingSummary, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rev *Review) error {
	query := `
		INSERT INTO reviews (
			id, author_id, target_property_id, target_user_id, rating, comment
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, rev, query,
		rev.ID,
		rev.AuthorID,
		rev.TargetPropertyID,
		rev.TargetUserID,
		rev.Rating,
		rev.Comment,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create review: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)

	var rev Review
	err := r.db.GetContext(ctx, &rev, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rev, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete review: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByProperty(
	ctx context.Context,
	propertyID string,
	params ListParams,
) ([]Review, int, error) {
	return r.list(ctx, "target_property_id", propertyID, params)
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Review, int, error) {
	return r.list(ctx, "target_user_id", userID, params)
}

func (r *repository) list(
	ctx context.Context,
	targetColumn, targetID string,
	params ListParams,
) ([]Review, int, error) {
	params.Normalize()

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM reviews WHERE %s = $1",
		targetColumn,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, targetID); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE %s = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		reviewColumns, targetColumn)

	var reviews []Review
	err := r.db.SelectContext(ctx, &reviews, query,
		targetID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *repository) SummaryForProperty(
	ctx context.Context,
	propertyID string,
) (*RatingSummary, error) {
	return r.summary(ctx, "target_property_id", propertyID)
}

func (r *repository) SummaryForUser(
	ctx context.Context,
	userID string,
) (*RatingSummary, error) {
	return r.summary(ctx, "target_user_id", userID)
}

func (r *repository) summary(
	ctx context.Context,
	targetColumn, targetID string,
) (*RatingSummary, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count
		FROM reviews
		WHERE %s = $1`,
		targetColumn)

	var summary RatingSummary
	if err := r.db.GetContext(ctx, &summary, query, targetID); err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}

	return &summary, nil
}
