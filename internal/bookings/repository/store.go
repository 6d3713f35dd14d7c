package repository

import (
	"context"
	"errors"

	"tourbook/internal/bookings/domain"
	"tourbook/internal/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type BookingStore struct {
	db database.Service
}

func NewBookingStore(db database.Service) BookingRepository {
	return &BookingStore{
		db: db,
	}
}

func (s *BookingStore) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query := `INSERT INTO bookings (tour_id, user_id, price, paid, session_id)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`

	err := s.db.Pool().QueryRow(ctx, query,
		booking.TourID, booking.UserID, booking.Price, booking.Paid, booking.SessionID,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Stripe retries webhooks, the same session must not book twice.
			return nil, domain.ErrAlreadyBooked
		}
		return nil, err
	}

	return booking, nil
}

func (s *BookingStore) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	sqlStr, args, err := sq.Select("id", "tour_id", "user_id", "price", "paid", "session_id", "created_at").
		From("bookings").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool().Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking := &domain.Booking{}
		err := rows.Scan(
			&booking.ID,
			&booking.TourID,
			&booking.UserID,
			&booking.Price,
			&booking.Paid,
			&booking.SessionID,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (s *BookingStore) UserHasBooking(ctx context.Context, userID, tourID uuid.UUID) (bool, error) {
	sqlStr, args, err := sq.Select("1").
		From("bookings").
		Where(sq.Eq{"user_id": userID, "tour_id": tourID, "paid": true}).
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	rows, err := s.db.Pool().Query(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	return rows.Next(), rows.Err()
}
