package handler

import (
	"errors"
	"net/http"

	"tourbook/internal/bookings/domain"
	"tourbook/internal/bookings/usecase"
	"tourbook/internal/middleware"
	toursdomain "tourbook/internal/tours/domain"
	"tourbook/pkg/logger"

	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	usecase usecase.BookingUsecase
}

func NewBookingHandler(u usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{
		usecase: u,
	}
}

func (h *BookingHandler) Bind(g *echo.Group, auth *middleware.Auth) {
	g.POST("/checkout-session/:tourId", h.CreateCheckoutSession, auth.Protect())
	g.GET("/me", h.ListMyBookings, auth.Protect())
	g.POST("/webhook", h.HandleWebhook)
}

func (h *BookingHandler) CreateCheckoutSession(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	output, err := h.usecase.CreateCheckoutSession(c.Request().Context(), c.Param("tourId"), user.ID, user.Email)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	output, err := h.usecase.ListMyBookings(c.Request().Context(), user.ID)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"results": len(output), "bookings": output})
}

func (h *BookingHandler) HandleWebhook(c echo.Context) error {
	if err := h.usecase.HandleWebhook(c.Request()); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *BookingHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, toursdomain.ErrInvalidTourID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, toursdomain.ErrTourNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyBooked):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		logger.Error("Unexpected error in bookings handler:", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
