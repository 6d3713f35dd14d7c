package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"tourbook/internal/bookings/client"
	"tourbook/internal/bookings/domain"
	"tourbook/internal/bookings/repository"
	toursdomain "tourbook/internal/tours/domain"
	toursrepo "tourbook/internal/tours/repository"
	"tourbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	tourRepo    toursrepo.TourRepository
	provider    client.Provider
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	tourRepo toursrepo.TourRepository,
	provider client.Provider,
) BookingUsecase {
	return &bookingService{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		provider:    provider,
	}
}

func (b *bookingService) CreateCheckoutSession(ctx context.Context, tourID string, userID uuid.UUID, email string) (CheckoutSessionOutput, error) {
	tid, err := uuid.Parse(tourID)
	if err != nil {
		return CheckoutSessionOutput{}, toursdomain.ErrInvalidTourID
	}

	tour, err := b.tourRepo.GetTourByID(ctx, tid)
	if err != nil {
		return CheckoutSessionOutput{}, err
	}

	booked, err := b.bookingRepo.UserHasBooking(ctx, userID, tid)
	if err != nil {
		return CheckoutSessionOutput{}, fmt.Errorf("failed to check existing booking: %w", err)
	}
	if booked {
		return CheckoutSessionOutput{}, domain.ErrAlreadyBooked
	}

	sess, err := b.provider.CreateCheckoutSession(email, tour.Name, tour.ID.String(), userID.String(), tour.Price)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create Stripe checkout session. tour_id: %s, user_id: %s, err: %s", tourID, userID, err.Error()))
		return CheckoutSessionOutput{}, errors.New("failed to create checkout session")
	}

	return CheckoutSessionOutput{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

func (b *bookingService) ListMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := b.bookingRepo.ListBookingsByUser(ctx, userID)
	if err != nil {
		logger.Error("failed to list bookings:", err)
		return nil, err
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, ToBookingResponse(booking))
	}

	return out, nil
}

func (b *bookingService) HandleWebhook(r *http.Request) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrWebhook)
	}

	event, err := b.provider.ConstructEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		logger.Error(fmt.Sprintf("invalid webhook signature. err: %s", err.Error()))
		return fmt.Errorf("%w: invalid signature", domain.ErrWebhook)
	}

	if err := b.processEvent(r.Context(), event); err != nil {
		logger.Error(fmt.Sprintf("failed to process webhook event. type: %s, err: %s", event.Type, err.Error()))
		return fmt.Errorf("%w: failed to process event", domain.ErrWebhook)
	}

	return nil
}

func (b *bookingService) processEvent(ctx context.Context, event stripe.Event) error {
	if event.Type != "checkout.session.completed" {
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	tourID, err := uuid.Parse(session.Metadata["tour_id"])
	if err != nil {
		return fmt.Errorf("invalid tour_id in session metadata: %w", err)
	}
	userID, err := uuid.Parse(session.Metadata["user_id"])
	if err != nil {
		return fmt.Errorf("invalid user_id in session metadata: %w", err)
	}

	booking := &domain.Booking{
		TourID:    tourID,
		UserID:    userID,
		Price:     session.AmountTotal,
		Paid:      true,
		SessionID: session.ID,
	}

	_, err = b.bookingRepo.CreateBooking(ctx, booking)
	if errors.Is(err, domain.ErrAlreadyBooked) {
		// Redelivered event, the booking is already recorded.
		return nil
	}

	return err
}
