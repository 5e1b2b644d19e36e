package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"devevent/internal/domain"
)

type bookingRepository struct {
	source Source
}

func NewBookingRepository(source Source) domain.BookingRepository {
	return &bookingRepository{source: source}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.source.DB(ctx)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	query := `
		INSERT INTO bookings (id, event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := db.ExecContext(ctx, query, id, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.ID = id
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	db, err := r.source.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, event_id, email, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	b := &domain.Booking{}
	err = db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select booking: %w", err)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	if uuid.Validate(eventID) != nil {
		return []*domain.Booking{}, nil
	}
	db, err := r.source.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, event_id, email, created_at, updated_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.CreatedAt = b.CreatedAt.UTC()
		b.UpdatedAt = b.UpdatedAt.UTC()
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	if uuid.Validate(b.ID) != nil {
		return domain.ErrNotFound
	}
	db, err := r.source.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE bookings
		SET event_id = $2, email = $3, updated_at = $4
		WHERE id = $1
	`
	res, err := db.ExecContext(ctx, query, b.ID, b.EventID, b.Email, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
