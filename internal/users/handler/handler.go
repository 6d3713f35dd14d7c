package handler

import (
	"errors"
	"net/http"
	"strconv"

	authdomain "tourbook/internal/auth/domain"
	"tourbook/internal/middleware"
	"tourbook/internal/users/domain"
	"tourbook/internal/users/usecase"
	"tourbook/pkg/logger"
	"tourbook/pkg/uploadfiles"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	usecase  usecase.UserUsecase
	uploader *uploadfiles.Uploader
}

func NewUserHandler(u usecase.UserUsecase, uploader *uploadfiles.Uploader) *UserHandler {
	return &UserHandler{
		usecase:  u,
		uploader: uploader,
	}
}

func (h *UserHandler) Bind(g *echo.Group, auth *middleware.Auth) {
	me := g.Group("", auth.Protect())
	me.GET("/me", h.GetMe)
	me.PATCH("/me", h.UpdateMe)
	me.DELETE("/me", h.DeleteMe)

	admin := g.Group("", auth.Protect(), middleware.RestrictTo(authdomain.RoleAdmin))
	admin.GET("", h.ListUsers)
	admin.POST("/reactivate", h.ReactivateUser)
	admin.GET("/:id", h.GetUser)
	admin.PATCH("/:id", h.UpdateUser)
	admin.DELETE("/:id", h.DeleteUser)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	output, err := h.usecase.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

// updateMeRequest widens the profile input with the password fields so a
// request smuggling them in, form-encoded or JSON, can be refused.
type updateMeRequest struct {
	usecase.UpdateMeInput
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"passwordConfirm" form:"passwordConfirm"`
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}

	// Password changes have their own endpoint with current-password proof.
	if req.Password != "" || req.PasswordConfirm != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": domain.ErrPasswordNotEditable.Error()})
	}

	if err := c.Validate(&req.UpdateMeInput); err != nil {
		return err
	}

	photoURL, err := h.uploadPhoto(c, user.ID.String())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	output, err := h.usecase.UpdateProfile(c.Request().Context(), user.ID, req.UpdateMeInput, photoURL)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *UserHandler) DeleteMe(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	if err := h.usecase.DeactivateMe(c.Request().Context(), user.ID); err != nil {
		return h.mapError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	output, err := h.usecase.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"results": len(output), "users": output})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	output, err := h.usecase.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req usecase.AdminUpdateUserInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.UpdateUser(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.usecase.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ReactivateUser(c echo.Context) error {
	var req usecase.ReactivateUserInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.ReactivateUser(c.Request().Context(), req.Email)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *UserHandler) uploadPhoto(c echo.Context, userID string) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil {
		return "", nil // no photo in the request
	}

	if h.uploader == nil {
		return "", errors.New("photo uploads are not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return h.uploader.UploadImage(c.Request().Context(), src, file, "users", "user-"+userID)
}

func (h *UserHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, authdomain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, authdomain.ErrInvalidUserRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		logger.Error("Unexpected error in users handler:", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
