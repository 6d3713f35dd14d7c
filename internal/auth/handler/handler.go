package handler

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"tourbook/internal/auth/domain"
	"tourbook/internal/auth/usecase"
	"tourbook/internal/middleware"
	"tourbook/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	usecase    usecase.AuthUsecase
	cookieTTL  time.Duration
	secureCook bool
}

func NewAuthHandler(u usecase.AuthUsecase) *AuthHandler {
	days, err := strconv.Atoi(os.Getenv("JWT_COOKIE_EXPIRES_DAYS"))
	if err != nil || days <= 0 {
		days = 90
	}

	return &AuthHandler{
		usecase:    u,
		cookieTTL:  time.Duration(days) * 24 * time.Hour,
		secureCook: os.Getenv("APP_ENV") != "development",
	}
}

func (h *AuthHandler) Bind(g *echo.Group, auth *middleware.Auth) {
	g.POST("/signup", h.SignupHandler)
	g.POST("/login", h.LoginHandler)
	g.GET("/logout", h.LogoutHandler)
	g.POST("/forgot-password", h.ForgotPasswordHandler)
	g.PATCH("/reset-password/:token", h.ResetPasswordHandler)
	g.PATCH("/update-password", h.UpdatePasswordHandler, auth.Protect())
	g.GET("/session", h.SessionHandler, auth.IsLoggedIn())
}

func (h *AuthHandler) SignupHandler(c echo.Context) error {
	var req usecase.SignupInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.Signup(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case isValidationError(err):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			logger.Error("Unexpected error in SignupHandler:", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
		}
	}

	h.setSessionCookie(c, output.Token)
	return c.JSON(http.StatusCreated, output)
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrTooManyLoginAttempts):
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": err.Error()})
		default:
			logger.Error("Unexpected error in LoginHandler:", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
		}
	}

	h.setSessionCookie(c, output.Token)
	return c.JSON(http.StatusOK, output)
}

// LogoutHandler overwrites the session cookie with an inert value that
// expires almost immediately.
func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "loggedout",
		Expires:  time.Now().Add(10 * time.Second),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCook,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) ForgotPasswordHandler(c echo.Context) error {
	var req usecase.ForgotPasswordInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.ForgotPassword(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailDelivery) {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		logger.Error("Unexpected error in ForgotPasswordHandler:", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, output)
}

func (h *AuthHandler) ResetPasswordHandler(c echo.Context) error {
	var req usecase.ResetPasswordInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	req.Token = c.Param("token")
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.ResetPassword(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrPasswordMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			logger.Error("Unexpected error in ResetPasswordHandler:", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
		}
	}

	h.setSessionCookie(c, output.Token)
	return c.JSON(http.StatusOK, output)
}

func (h *AuthHandler) UpdatePasswordHandler(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req usecase.UpdatePasswordInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.usecase.UpdatePassword(c.Request().Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "current password does not match"})
		case errors.Is(err, domain.ErrPasswordMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
		default:
			logger.Error("Unexpected error in UpdatePasswordHandler:", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
		}
	}

	h.setSessionCookie(c, output.Token)
	return c.JSON(http.StatusOK, output)
}

// SessionHandler reports login state for rendered pages; behind IsLoggedIn
// it never fails, it just answers anonymous.
func (h *AuthHandler) SessionHandler(c echo.Context) error {
	user, ok := middleware.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"loggedIn": false})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"loggedIn": true,
		"user": usecase.UserInfo{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
			Photo: user.Photo,
			Role:  string(user.Role),
		},
	})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, signed string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    signed,
		Expires:  time.Now().Add(h.cookieTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCook,
		SameSite: http.SameSiteLaxMode,
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidUserName) ||
		errors.Is(err, domain.ErrInvalidUserEmail) ||
		errors.Is(err, domain.ErrInvalidUserEmailFormat) ||
		errors.Is(err, domain.ErrInvalidUserPassword) ||
		errors.Is(err, domain.ErrInvalidUserRole) ||
		errors.Is(err, domain.ErrPasswordMismatch)
}
