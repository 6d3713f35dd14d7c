package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	authhandler "tourbook/internal/auth/handler"
	authrepo "tourbook/internal/auth/repository"
	authusecase "tourbook/internal/auth/usecase"
	bookinghandler "tourbook/internal/bookings/handler"
	bookingrepo "tourbook/internal/bookings/repository"
	bookingusecase "tourbook/internal/bookings/usecase"
	sessionMiddleware "tourbook/internal/middleware"
	reviewhandler "tourbook/internal/reviews/handler"
	reviewrepo "tourbook/internal/reviews/repository"
	reviewusecase "tourbook/internal/reviews/usecase"
	tourhandler "tourbook/internal/tours/handler"
	tourrepo "tourbook/internal/tours/repository"
	tourusecase "tourbook/internal/tours/usecase"
	userhandler "tourbook/internal/users/handler"
	userrepo "tourbook/internal/users/repository"
	userusecase "tourbook/internal/users/usecase"
	"tourbook/pkg/logger"
	pkgvalidator "tourbook/pkg/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XFrameOptions:         "DENY",
		ContentTypeNosniff:    "nosniff",
		XSSProtection:         "1; mode=block",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:; connect-src 'self' https:;",
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(100),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
		},
	}))
	e.Use(middleware.BodyLimit("2MB"))

	e.Validator = pkgvalidator.NewEchoValidator()
	e.HTTPErrorHandler = errorHandler

	e.GET("/health", s.healthHandler)

	apiGroup := e.Group("")
	auth := s.setupAuthRoutes(apiGroup)
	s.setupUserRoutes(apiGroup, auth)
	tourGroup := s.setupTourRoutes(apiGroup, auth)
	s.setupReviewRoutes(apiGroup, tourGroup, auth)
	s.setupBookingRoutes(apiGroup, auth)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.db.Health())
}

func (s *Server) setupAuthRoutes(apiGroup *echo.Group) *sessionMiddleware.Auth {
	userStore := authrepo.NewUserStore(s.db)
	auth := sessionMiddleware.NewAuth(userStore, s.tokens)

	authUsecase := authusecase.NewAuthService(userStore, s.tokens, s.mailer)
	authHandler := authhandler.NewAuthHandler(authUsecase)

	authGroup := apiGroup.Group("/auth")
	authHandler.Bind(authGroup, auth)

	return auth
}

func (s *Server) setupUserRoutes(apiGroup *echo.Group, auth *sessionMiddleware.Auth) {
	userStore := userrepo.NewUserStore(s.db)
	userUsecase := userusecase.NewUserService(userStore)
	userHandler := userhandler.NewUserHandler(userUsecase, s.uploader)

	userGroup := apiGroup.Group("/users")
	userHandler.Bind(userGroup, auth)
}

func (s *Server) setupTourRoutes(apiGroup *echo.Group, auth *sessionMiddleware.Auth) *echo.Group {
	tourStore := tourrepo.NewTourStore(s.db)
	tourUsecase := tourusecase.NewTourService(tourStore)
	tourHandler := tourhandler.NewTourHandler(tourUsecase, s.uploader)

	tourGroup := apiGroup.Group("/tours")
	tourHandler.Bind(tourGroup, auth)

	return tourGroup
}

func (s *Server) setupReviewRoutes(apiGroup, tourGroup *echo.Group, auth *sessionMiddleware.Auth) {
	reviewStore := reviewrepo.NewReviewStore(s.db)
	reviewUsecase := reviewusecase.NewReviewService(reviewStore)
	reviewHandler := reviewhandler.NewReviewHandler(reviewUsecase)

	reviewGroup := apiGroup.Group("/reviews")
	reviewHandler.Bind(tourGroup, reviewGroup, auth)
}

func (s *Server) setupBookingRoutes(apiGroup *echo.Group, auth *sessionMiddleware.Auth) {
	bookingStore := bookingrepo.NewBookingStore(s.db)
	tourStore := tourrepo.NewTourStore(s.db)
	bookingUsecase := bookingusecase.NewBookingService(bookingStore, tourStore, s.payments)
	bookingHandler := bookinghandler.NewBookingHandler(bookingUsecase)

	bookingGroup := apiGroup.Group("/bookings")
	bookingHandler.Bind(bookingGroup, auth)
}

// errorHandler keeps unexpected failures opaque outside development while
// still passing through errors handlers raised on purpose.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, echo.Map{"error": fmt.Sprintf("%v", httpErr.Message)})
		return
	}

	logger.Error("unhandled error:", err)
	if os.Getenv("APP_ENV") == "development" {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		return
	}

	_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}
