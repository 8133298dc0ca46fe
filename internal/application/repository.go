// AngelaMos | 2026
// repository.go

package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentloop/rentloop-api/internal/core"
)

const applicationColumns = `
	id, property_id, tenant_id, owner_id, message, monthly_rent_offered,
	move_in_date, status, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
	GetAcceptedByID(ctx context.Context, id string) (*Application, error)
	ListByTenant(
		ctx context.Context,
		tenantID string,
		params ListParams,
	) ([]Application, int, error)
	ListByOwner(
		ctx context.Context,
		ownerID string,
		params ListParams,
	) ([]Application, int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, app *Application) error {
	query := `
		INSERT INTO rental_applications (
			id, property_id, tenant_id, owner_id, message,
			monthly_rent_offered, move_in_date, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, app, query,
		app.ID,
		app.PropertyID,
		app.TenantID,
		app.OwnerID,
		app.Message,
		app.MonthlyRentOffered,
		app.MoveInDate,
		app.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create application: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Application, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM rental_applications WHERE id = $1`,
		applicationColumns,
	)

	var app Application
	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	return &app, nil
}

func (r *repository) GetAcceptedByID(
	ctx context.Context,
	id string,
) (*Application, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM rental_applications WHERE id = $1 AND status = 'accepted'`,
		applicationColumns,
	)

	var app Application
	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get accepted application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get accepted application: %w", err)
	}

	return &app, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE rental_applications
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update application status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByTenant(
	ctx context.Context,
	tenantID string,
	params ListParams,
) ([]Application, int, error) {
	return r.list(ctx, "tenant_id", tenantID, params)
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
	params ListParams,
) ([]Application, int, error) {
	return r.list(ctx, "owner_id", ownerID, params)
}

func (r *repository) list(
	ctx context.Context,
	scopeColumn, scopeID string,
	params ListParams,
) ([]Application, int, error) {
	params.Normalize()

	conditions := []string{fmt.Sprintf("%s = $1", scopeColumn)}
	args := []any{scopeID}
	argIdx := 2

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.PropertyID != "" {
		conditions = append(conditions, fmt.Sprintf(
			"property_id = $%d", argIdx))
		args = append(args, params.PropertyID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM rental_applications WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM rental_applications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		applicationColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var apps []Application
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	return apps, total, nil
}

func (r *repository) CountByStatus(
	ctx context.Context,
) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM rental_applications
		GROUP BY status`

	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
