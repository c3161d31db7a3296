package resident

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, res *Resident) error
	GetByID(ctx context.Context, id string) (*Resident, error)
	GetByEmail(ctx context.Context, email string) (*Resident, error)
	List(ctx context.Context, filter Filter) ([]*Resident, int, error)
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const residentColumns = `
	id, email, password_hash, display_name, unit, is_active, is_admin, created_at, last_login_at
`

func (r *pgxRepository) Create(ctx context.Context, res *Resident) error {
	const query = `
		INSERT INTO public.residents (email, password_hash, display_name, unit, is_active, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		res.Email,
		res.PasswordHash,
		res.DisplayName,
		res.Unit,
		res.IsActive,
		res.IsAdmin,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create resident failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM public.residents WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM public.residents WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg any) (*Resident, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var res Resident
	if err := row.Scan(
		&res.ID, &res.Email, &res.PasswordHash, &res.DisplayName, &res.Unit,
		&res.IsActive, &res.IsAdmin, &res.CreatedAt, &res.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resident failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Resident, int, error) {
	var args []interface{}
	queryBase := `
		SELECT ` + residentColumns + `, count(*) OVER() as total_count
		FROM public.residents
		WHERE 1=1
	`
	paramIndex := 1

	if filter.Keyword != "" {
		queryBase += fmt.Sprintf(" AND (display_name ILIKE $%d OR unit ILIKE $%d)", paramIndex, paramIndex)
		args = append(args, "%"+filter.Keyword+"%")
		paramIndex++
	}

	queryBase += " ORDER BY display_name ASC"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBase += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list residents failed: %w", err)
	}
	defer rows.Close()

	var result []*Resident
	var total int

	for rows.Next() {
		var res Resident
		if err := rows.Scan(
			&res.ID, &res.Email, &res.PasswordHash, &res.DisplayName, &res.Unit,
			&res.IsActive, &res.IsAdmin, &res.CreatedAt, &res.LastLoginAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan resident failed: %w", err)
		}
		result = append(result, &res)
	}

	return result, total, nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `UPDATE public.residents SET last_login_at = $1 WHERE id = $2`
	if _, err := r.pool.Exec(ctx, query, t, id); err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	return nil
}
