package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ListActive returns the pending/approved bookings for one resource on
	// one civil date, ordered by start time then creation time. This is the
	// conflict engine's candidate set.
	ListActive(ctx context.Context, resourceID string, date time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("resource_id", "requester_id", "date", "start_minute", "end_minute", "status").
		Values(b.ResourceID, b.RequesterID, b.Date, int16(b.Start), int16(b.End), b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		// The table carries an overlap exclusion constraint over
		// (resource_id, date, active window). It is the final authority on
		// exclusivity; a booking approved between our validation and this
		// insert lands here.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.resource_id", "a.name", "b.requester_id", "res.display_name",
		"b.date", "b.start_minute", "b.end_minute", "b.status",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.amenities a ON b.resource_id = a.id").
		Join("public.residents res ON b.requester_id = res.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.resource_id", "a.name", "b.requester_id", "res.display_name",
		"b.date", "b.start_minute", "b.end_minute", "b.status",
		"b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.amenities a ON b.resource_id = a.id").
		Join("public.residents res ON b.requester_id = res.id")

	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"b.requester_id": filter.RequesterID})
	}
	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"b.resource_id": filter.ResourceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.date": schedule.Date(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.date": schedule.Date(*filter.DateTo)})
	}

	orderBy := "b.date"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy+" "+orderDir, "b.start_minute ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var (
			b          Booking
			start, end int16
		)
		if err := rows.Scan(
			&b.ID, &b.ResourceID, &b.ResourceName, &b.RequesterID, &b.RequesterName,
			&b.Date, &start, &end, &b.Status,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		b.Start = schedule.TimeOfDay(start)
		b.End = schedule.TimeOfDay(end)
		b.Date = schedule.Date(b.Date)
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListActive(ctx context.Context, resourceID string, date time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.resource_id", "a.name", "b.requester_id", "res.display_name",
		"b.date", "b.start_minute", "b.end_minute", "b.status",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.amenities a ON b.resource_id = a.id").
		Join("public.residents res ON b.requester_id = res.id").
		Where(squirrel.Eq{"b.resource_id": resourceID}).
		Where(squirrel.Eq{"b.date": schedule.Date(date)}).
		Where(squirrel.Eq{"b.status": []string{string(StatusPending), string(StatusApproved)}}).
		OrderBy("b.start_minute ASC", "b.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var (
			b          Booking
			start, end int16
		)
		if err := rows.Scan(
			&b.ID, &b.ResourceID, &b.ResourceName, &b.RequesterID, &b.RequesterName,
			&b.Date, &start, &end, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan active booking failed: %w", err)
		}
		b.Start = schedule.TimeOfDay(start)
		b.End = schedule.TimeOfDay(end)
		b.Date = schedule.Date(b.Date)
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b          Booking
		start, end int16
	)
	if err := row.Scan(
		&b.ID, &b.ResourceID, &b.ResourceName, &b.RequesterID, &b.RequesterName,
		&b.Date, &start, &end, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Start = schedule.TimeOfDay(start)
	b.End = schedule.TimeOfDay(end)
	b.Date = schedule.Date(b.Date)
	return &b, nil
}
