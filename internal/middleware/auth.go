package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tourbook/internal/auth/domain"
	"tourbook/internal/auth/repository"
	"tourbook/pkg/token"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "jwt"

type ctxKey struct{}

var userKey ctxKey

// CurrentUser returns the identity Protect (or IsLoggedIn) resolved for
// this request. Identity is threaded through the request context, never
// through shared mutable request state.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

type Auth struct {
	repo   repository.UserRepository
	tokens *token.Manager
}

func NewAuth(repo repository.UserRepository, tokens *token.Manager) *Auth {
	return &Auth{
		repo:   repo,
		tokens: tokens,
	}
}

// Protect is the hard-fail gate: any miss in the
// extract → verify → resolve → staleness chain short-circuits to 401.
func (a *Auth) Protect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			signed := extractToken(c)
			if signed == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "you are not logged in, please log in to get access"})
			}

			user, err := a.resolve(c.Request().Context(), signed)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}

			c.SetRequest(c.Request().WithContext(withUser(c.Request().Context(), user)))
			return next(c)
		}
	}
}

// IsLoggedIn resolves identity for presentation only: it trusts nothing but
// the cookie and silently continues as anonymous on any failure.
func (a *Auth) IsLoggedIn() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := a.resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(withUser(c.Request().Context(), user)))
			return next(c)
		}
	}
}

// RestrictTo gates a route to the given roles. It only consumes an identity
// already resolved by Protect; if none is present it refuses the request
// instead of assuming one.
func RestrictTo(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c.Request().Context())
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "you are not logged in, please log in to get access"})
			}

			if !user.Role.OneOf(roles...) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not have permission to perform this action"})
			}

			return next(c)
		}
	}
}

// resolve runs the verify → live-user → staleness steps shared by both
// entry points. The returned error text is what Protect surfaces.
func (a *Auth) resolve(ctx context.Context, signed string) (*domain.User, error) {
	subjectID, issuedAt, err := a.tokens.Verify(signed)
	if err != nil {
		return nil, errInvalidToken
	}

	userID, err := uuid.Parse(subjectID)
	if err != nil {
		return nil, errInvalidToken
	}

	user, err := a.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errUserGone
	}

	if user.ChangedPasswordAfter(issuedAt) {
		return nil, errStaleToken
	}

	return user, nil
}

var (
	errInvalidToken = errors.New("invalid or expired token, please log in again")
	errUserGone     = errors.New("the user belonging to this token no longer exists")
	errStaleToken   = errors.New("password was recently changed, please log in again")
)

func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func extractToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
