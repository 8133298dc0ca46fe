// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rentloop/rentloop-api/internal/core"
)

const propertyColumns = `
	id, owner_id, title, description, property_type, bhk, furnishing,
	rent, security_deposit, maintenance, built_up_area, available_from,
	min_lock_in_months, allowed_tenants, pets_allowed, smoking_allowed,
	location, amenities, images, is_verified, status,
	created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	Update(ctx context.Context, p *Property) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetVerified(ctx context.Context, id string, verified bool) error
	List(
		ctx context.Context,
		params ListPropertiesParams,
	) ([]Property, int, error)
	ListByIDs(ctx context.Context, ids []string) ([]Property, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			id, owner_id, title, description, property_type, bhk, furnishing,
			rent, security_deposit, maintenance, built_up_area, available_from,
			min_lock_in_months, allowed_tenants, pets_allowed, smoking_allowed,
			location, amenities, images, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.OwnerID,
		p.Title,
		p.Description,
		p.PropertyType,
		p.BHK,
		p.Furnishing,
		p.Rent,
		p.SecurityDeposit,
		p.Maintenance,
		p.BuiltUpArea,
		p.AvailableFrom,
		p.MinLockInMonths,
		p.AllowedTenants,
		p.PetsAllowed,
		p.SmokingAllowed,
		p.Location,
		p.Amenities,
		p.Images,
		p.Status,
	)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Property, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM properties WHERE id = $1`,
		propertyColumns,
	)

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET title = $2, description = $3, property_type = $4, bhk = $5,
		    furnishing = $6, rent = $7, security_deposit = $8,
		    maintenance = $9, built_up_area = $10, available_from = $11,
		    min_lock_in_months = $12, allowed_tenants = $13,
		    pets_allowed = $14, smoking_allowed = $15, location = $16,
		    amenities = $17, images = $18, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Title,
		p.Description,
		p.PropertyType,
		p.BHK,
		p.Furnishing,
		p.Rent,
		p.SecurityDeposit,
		p.Maintenance,
		p.BuiltUpArea,
		p.AvailableFrom,
		p.MinLockInMonths,
		p.AllowedTenants,
		p.PetsAllowed,
		p.SmokingAllowed,
		p.Location,
		p.Amenities,
		p.Images,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE properties
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update property status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update property status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update property status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetVerified(
	ctx context.Context,
	id string,
	verified bool,
) error {
	query := `
		UPDATE properties
		SET is_verified = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, verified)
	if err != nil {
		return fmt.Errorf("set property verified: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set property verified: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set property verified: %w", core.ErrNotFound)
	}

	return nil
}

//nolint:funlen // filter assembly is flat and readable as one unit
func (r *repository) List(
	ctx context.Context,
	params ListPropertiesParams,
) ([]Property, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, params.OwnerID)
		argIdx++
	}

	if params.City != "" {
		conditions = append(conditions, fmt.Sprintf(
			"location->>'city' ILIKE $%d", argIdx))
		args = append(args, params.City)
		argIdx++
	}

	if params.PropertyType != "" {
		conditions = append(conditions, fmt.Sprintf(
			"property_type = $%d", argIdx))
		args = append(args, params.PropertyType)
		argIdx++
	}

	if params.Furnishing != "" {
		conditions = append(conditions, fmt.Sprintf(
			"furnishing = $%d", argIdx))
		args = append(args, params.Furnishing)
		argIdx++
	}

	if params.BHK > 0 {
		conditions = append(conditions, fmt.Sprintf("bhk = $%d", argIdx))
		args = append(args, params.BHK)
		argIdx++
	}

	if params.MinRent > 0 {
		conditions = append(conditions, fmt.Sprintf("rent >= $%d", argIdx))
		args = append(args, params.MinRent)
		argIdx++
	}

	if params.MaxRent > 0 {
		conditions = append(conditions, fmt.Sprintf("rent <= $%d", argIdx))
		args = append(args, params.MaxRent)
		argIdx++
	}

	if params.PetsAllowed != nil {
		conditions = append(conditions, fmt.Sprintf(
			"pets_allowed = $%d", argIdx))
		args = append(args, *params.PetsAllowed)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM properties WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	orderBy := "created_at DESC"
	switch params.Sort {
	case "rent_asc":
		orderBy = "rent ASC"
	case "rent_desc":
		orderBy = "rent DESC"
	case "oldest":
		orderBy = "created_at ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		propertyColumns, whereClause, orderBy, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var properties []Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	return properties, total, nil
}

// ListByIDs preserves the order of the input slice so search relevance
// survives the round trip through Postgres.
func (r *repository) ListByIDs(
	ctx context.Context,
	ids []string,
) ([]Property, error) {
	if len(ids) == 0 {
		return []Property{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT %s FROM properties WHERE id IN (%s)`,
		propertyColumns,
		strings.Join(placeholders, ", "),
	)

	var properties []Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("list properties by ids: %w", err)
	}

	byID := make(map[string]Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}

	ordered := make([]Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return ordered, nil
}

func (r *repository) CountByStatus(
	ctx context.Context,
) (map[string]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM properties GROUP BY status`

	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count properties by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
