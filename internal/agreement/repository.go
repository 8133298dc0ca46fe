// AngelaMos | 2026
// repository.go

package agreement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentloop/rentloop-api/internal/core"
)

const agreementColumns = `
	id, application_id, property_id, tenant_id, owner_id, start_date,
	end_date, monthly_rent, security_deposit, lock_in_months, terms,
	signed_by_tenant, signed_by_owner, status, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, a *Agreement) error
	GetByID(ctx context.Context, id string) (*Agreement, error)
	SetSigned(ctx context.Context, id, column string) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListByParty(
		ctx context.Context,
		userID string,
		params ListParams,
	) ([]Agreement, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Agreement) error {
	query := `
		INSERT INTO rental_agreements (
			id, application_id, property_id, tenant_id, owner_id,
			start_date, end_date, monthly_rent, security_deposit,
			lock_in_months, terms, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, a, query,
		a.ID,
		a.ApplicationID,
		a.PropertyID,
		a.TenantID,
		a.OwnerID,
		a.StartDate,
		a.EndDate,
		a.MonthlyRent,
		a.SecurityDeposit,
		a.LockInMonths,
		a.Terms,
		a.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create agreement: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create agreement: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Agreement, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM rental_agreements WHERE id = $1`,
		agreementColumns,
	)

	var a Agreement
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get agreement: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get agreement: %w", err)
	}

	return &a, nil
}

// SetSigned flips one of the two signature flags. The column name is
// constrained to the two known flags before interpolation.
func (r *repository) SetSigned(ctx context.Context, id, column string) error {
	if column != "signed_by_tenant" && column != "signed_by_owner" {
		return fmt.Errorf("set signed: unknown column %q", column)
	}

	query := fmt.Sprintf(`
		UPDATE rental_agreements
		SET %s = TRUE, updated_at = NOW()
		WHERE id = $1`, column)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("set signed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set signed: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set signed: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE rental_agreements
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update agreement status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update agreement status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update agreement status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByParty(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Agreement, int, error) {
	params.Normalize()

	conditions := []string{"(tenant_id = $1 OR owner_id = $1)"}
	args := []any{userID}
	argIdx := 2

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM rental_agreements WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count agreements: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM rental_agreements
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		agreementColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var agreements []Agreement
	if err := r.db.SelectContext(ctx, &agreements, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list agreements: %w", err)
	}

	return agreements, total, nil
}
