package usecase

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type BookingUsecase interface {
	CreateCheckoutSession(ctx context.Context, tourID string, userID uuid.UUID, email string) (CheckoutSessionOutput, error)
	ListMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	HandleWebhook(r *http.Request) error
}
