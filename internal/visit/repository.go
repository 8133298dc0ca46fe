// AngelaMos | 2026
// repository.go

package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rentloop/rentloop-api/internal/core"
)

const visitColumns = `
	id, property_id, tenant_id, owner_id, preferred_at, notes, status,
	created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id string) (*Visit, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByTenant(
		ctx context.Context,
		tenantID string,
		params ListParams,
	) ([]Visit, int, error)
	ListByOwner(
		ctx context.Context,
		ownerID string,
		params ListParams,
	) ([]Visit, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Visit) error {
	query := `
		INSERT INTO visit_requests (
			id, property_id, tenant_id, owner_id, preferred_at, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, v, query,
		v.ID,
		v.PropertyID,
		v.TenantID,
		v.OwnerID,
		v.PreferredAt,
		v.Notes,
		v.Status,
	)
	if err != nil {
		return fmt.Errorf("create visit request: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Visit, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM visit_requests WHERE id = $1`,
		visitColumns,
	)

	var v Visit
	err := r.db.GetContext(ctx, &v, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get visit request: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get visit request: %w", err)
	}

	return &v, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE visit_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update visit status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update visit status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update visit status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByTenant(
	ctx context.Context,
	tenantID string,
	params ListParams,
) ([]Visit, int, error) {
	return r.list(ctx, "tenant_id", tenantID, params)
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
	params ListParams,
) ([]Visit, int, error) {
	return r.list(ctx, "owner_id", ownerID, params)
}

func (r *repository) list(
	ctx context.Context,
	scopeColumn, scopeID string,
	params ListParams,
) ([]Visit, int, error) {
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
		"SELECT COUNT(*) FROM visit_requests WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count visit requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM visit_requests
		WHERE %s
		ORDER BY preferred_at ASC
		LIMIT $%d OFFSET $%d`,
		visitColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var visits []Visit
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list visit requests: %w", err)
	}

	return visits, total, nil
}
