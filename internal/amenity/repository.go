package amenity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, a *Amenity) error
	GetByID(ctx context.Context, id string) (*Amenity, error)
	List(ctx context.Context, filter Filter) ([]*Amenity, int, error)
	Update(ctx context.Context, a *Amenity) error
	Delete(ctx context.Context, id string) error

	// SetAvailability replaces the amenity's operating envelope.
	// A nil availability clears it (amenity reads as closed).
	SetAvailability(ctx context.Context, id string, av *Availability) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Amenity) error {
	const query = `
		INSERT INTO public.amenities (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, a.Name, a.Description).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create amenity failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Amenity, error) {
	const query = `
		SELECT id, name, description, available_weekdays, opens_minute, closes_minute, created_at
		FROM public.amenities
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	a, err := scanAmenity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get amenity failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Amenity, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, name, description, available_weekdays, opens_minute, closes_minute, created_at,
			count(*) OVER() as total_count
		FROM public.amenities
		WHERE 1=1
	`
	paramIndex := 1

	if filter.Keyword != "" {
		queryBase += fmt.Sprintf(" AND name ILIKE $%d", paramIndex)
		args = append(args, "%"+filter.Keyword+"%")
		paramIndex++
	}

	queryBase += " ORDER BY name ASC"

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
		return nil, 0, fmt.Errorf("list amenities failed: %w", err)
	}
	defer rows.Close()

	var result []*Amenity
	var total int

	for rows.Next() {
		var (
			a        Amenity
			weekdays *int16
			opens    *int16
			closes   *int16
		)
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &weekdays, &opens, &closes, &a.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan amenity failed: %w", err)
		}
		a.Availability = buildAvailability(weekdays, opens, closes)
		result = append(result, &a)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Amenity) error {
	const query = `
		UPDATE public.amenities
		SET name = $1, description = $2
		WHERE id = $3
	`
	ct, err := r.pool.Exec(ctx, query, a.Name, a.Description, a.ID)
	if err != nil {
		return fmt.Errorf("update amenity failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetAvailability(ctx context.Context, id string, av *Availability) error {
	const query = `
		UPDATE public.amenities
		SET available_weekdays = $1, opens_minute = $2, closes_minute = $3
		WHERE id = $4
	`
	var (
		weekdays *int16
		opens    *int16
		closes   *int16
	)
	if av != nil {
		w := int16(av.Weekdays)
		o := int16(av.Opens)
		c := int16(av.Closes)
		weekdays, opens, closes = &w, &o, &c
	}

	ct, err := r.pool.Exec(ctx, query, weekdays, opens, closes, id)
	if err != nil {
		return fmt.Errorf("set amenity availability failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.amenities WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete amenity failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAmenity(row pgx.Row) (*Amenity, error) {
	var (
		a        Amenity
		weekdays *int16
		opens    *int16
		closes   *int16
	)
	if err := row.Scan(
		&a.ID, &a.Name, &a.Description, &weekdays, &opens, &closes, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.Availability = buildAvailability(weekdays, opens, closes)
	return &a, nil
}

// buildAvailability maps the nullable envelope columns back to the model.
// All three columns are set or cleared together by SetAvailability.
func buildAvailability(weekdays, opens, closes *int16) *Availability {
	if weekdays == nil || opens == nil || closes == nil {
		return nil
	}
	return &Availability{
		Weekdays: schedule.WeekdaySet(*weekdays),
		Opens:    schedule.TimeOfDay(*opens),
		Closes:   schedule.TimeOfDay(*closes),
	}
}
