package handler

import (
	"errors"
	"net/http"

	authdomain "tourbook/internal/auth/domain"
	"tourbook/internal/middleware"
	"tourbook/internal/tours/domain"
	"tourbook/internal/tours/usecase"
	"tourbook/pkg/logger"
	"tourbook/pkg/uploadfiles"

	"github.com/labstack/echo/v4"
)

type TourHandler struct {
	usecase  usecase.TourUsecase
	uploader *uploadfiles.Uploader
}

func NewTourHandler(u usecase.TourUsecase, uploader *uploadfiles.Uploader) *TourHandler {
	return &TourHandler{
		usecase:  u,
		uploader: uploader,
	}
}

func (h *TourHandler) Bind(g *echo.Group, auth *middleware.Auth) {
	g.GET("", h.ListTours)
	g.GET("/:id", h.GetTour)

	staff := g.Group("", auth.Protect(), middleware.RestrictTo(authdomain.RoleAdmin, authdomain.RoleLeadGuide))
	staff.POST("", h.CreateTour)
	staff.PATCH("/:id", h.UpdateTour)
	staff.DELETE("/:id", h.DeleteTour)
}

func (h *TourHandler) ListTours(c echo.Context) error {
	var req usecase.ListToursInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}

	output, err := h.usecase.ListTours(c.Request().Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"results": len(output), "tours": output})
}

func (h *TourHandler) GetTour(c echo.Context) error {
	output, err := h.usecase.GetTour(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *TourHandler) CreateTour(c echo.Context) error {
	var req usecase.CreateTourInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	coverURL, err := h.uploadCover(c, domain.Slugify(req.Name))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	output, err := h.usecase.CreateTour(c.Request().Context(), req, coverURL)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusCreated, output)
}

func (h *TourHandler) UpdateTour(c echo.Context) error {
	var req usecase.UpdateTourInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	coverURL, err := h.uploadCover(c, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	output, err := h.usecase.UpdateTour(c.Request().Context(), c.Param("id"), req, coverURL)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *TourHandler) DeleteTour(c echo.Context) error {
	if err := h.usecase.DeleteTour(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TourHandler) uploadCover(c echo.Context, prefix string) (string, error) {
	file, err := c.FormFile("imageCover")
	if err != nil {
		return "", nil // no cover in the request
	}

	if h.uploader == nil {
		return "", errors.New("image uploads are not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return h.uploader.UploadImage(c.Request().Context(), src, file, "tours", "tour-"+prefix)
}

func (h *TourHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTourID),
		errors.Is(err, domain.ErrInvalidTourName),
		errors.Is(err, domain.ErrInvalidTourDuration),
		errors.Is(err, domain.ErrInvalidTourGroupSize),
		errors.Is(err, domain.ErrInvalidTourDifficulty),
		errors.Is(err, domain.ErrInvalidTourPrice),
		errors.Is(err, domain.ErrInvalidTourSummary):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrTourNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrTourNameTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		logger.Error("Unexpected error in tours handler:", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
