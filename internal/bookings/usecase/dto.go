package usecase

import "tourbook/internal/bookings/domain"

type CheckoutSessionOutput struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type BookingResponse struct {
	ID     string `json:"id"`
	TourID string `json:"tourId"`
	Price  int64  `json:"price"`
	Paid   bool   `json:"paid"`
}

func ToBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:     booking.ID.String(),
		TourID: booking.TourID.String(),
		Price:  booking.Price,
		Paid:   booking.Paid,
	}
}
