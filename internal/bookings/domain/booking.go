package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `json:"id"`
	TourID    uuid.UUID `json:"tourId"`
	UserID    uuid.UUID `json:"userId"`
	Price     int64     `json:"price"`
	Paid      bool      `json:"paid"`
	SessionID string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyBooked   = errors.New("you have already booked this tour")
	ErrWebhook         = errors.New("webhook error")
)
