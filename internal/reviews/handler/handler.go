package handler

import (
	"errors"
	"net/http"
	"strconv"

	authdomain "tourbook/internal/auth/domain"
	"tourbook/internal/middleware"
	"tourbook/internal/reviews/domain"
	"tourbook/internal/reviews/usecase"
	toursdomain "tourbook/internal/tours/domain"
	"tourbook/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	usecase usecase.ReviewUsecase
}

func NewReviewHandler(u usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{
		usecase: u,
	}
}

// Bind attaches review routes nested under a tour, plus a flat delete route.
func (h *ReviewHandler) Bind(tours *echo.Group, reviews *echo.Group, auth *middleware.Auth) {
	tours.GET("/:tourId/reviews", h.ListReviews)
	tours.POST("/:tourId/reviews", h.CreateReview, auth.Protect(), middleware.RestrictTo(authdomain.RoleUser))

	reviews.DELETE("/:id", h.DeleteReview, auth.Protect())
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	output, err := h.usecase.ListReviews(c.Request().Context(), c.Param("tourId"), page, limit)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"results": len(output), "reviews": output})
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req usecase.CreateReviewInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.CreateReview(c.Request().Context(), c.Param("tourId"), user.ID, req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusCreated, output)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	err := h.usecase.DeleteReview(c.Request().Context(), c.Param("id"), user.ID, user.Role == authdomain.RoleAdmin)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidReviewID),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrEmptyReview),
		errors.Is(err, toursdomain.ErrInvalidTourID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrReviewNotFound), errors.Is(err, toursdomain.ErrTourNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateReview):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotReviewAuthor):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	default:
		logger.Error("Unexpected error in reviews handler:", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
