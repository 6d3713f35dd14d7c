package repository

import (
	"context"

	"tourbook/internal/bookings/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_booking_repository.go -package=test tourbook/internal/bookings/repository BookingRepository
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error)
	UserHasBooking(ctx context.Context, userID, tourID uuid.UUID) (bool, error)
}
