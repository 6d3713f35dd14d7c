package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"tourbook/internal/bookings/client"
	"tourbook/internal/database"
	"tourbook/pkg/logger"
	"tourbook/pkg/mailer"
	"tourbook/pkg/token"
	"tourbook/pkg/uploadfiles"
)

type Server struct {
	port int

	db       database.Service
	mailer   mailer.Mailer
	tokens   *token.Manager
	uploader *uploadfiles.Uploader
	payments client.Provider
}

const (
	FROM_EMAIL = "bookings@tourbook.dev"
)

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	resendAPIKey := os.Getenv("RESEND_API_KEY")
	fromEmail := FROM_EMAIL

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	expiresDays, err := strconv.Atoi(os.Getenv("JWT_EXPIRES_DAYS"))
	if err != nil || expiresDays < 1 {
		expiresDays = 90
	}

	payments, err := client.NewStripeProvider(client.StripeConfig{
		SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AppUrl:        os.Getenv("APP_URL"),
	})
	if err != nil {
		logger.Error("failed to configure payment provider:", err)
		os.Exit(1)
	}

	NewServer := &Server{
		port:     port,
		db:       database.New(),
		mailer:   mailer.NewResendMailer(resendAPIKey, fromEmail),
		tokens:   token.NewManager(secret, time.Duration(expiresDays)*24*time.Hour),
		uploader: newUploader(),
		payments: payments,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

// newUploader returns nil when no bucket is configured, image uploads are
// optional in local setups.
func newUploader() *uploadfiles.Uploader {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil
	}

	uploader, err := uploadfiles.NewUploader(uploadfiles.Config{
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		BucketName:      bucket,
		Region:          os.Getenv("S3_REGION"),
	})
	if err != nil {
		logger.Error("failed to configure uploader:", err)
		return nil
	}

	return uploader
}
