package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"tourbook/internal/auth/domain"
	"tourbook/internal/auth/repository"
	"tourbook/pkg/logger"
	"tourbook/pkg/mailer"
	"tourbook/pkg/password"
	"tourbook/pkg/token"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
)

const maxLoginAttempts = 5

// forgotPasswordMessage is returned whether or not the account exists, so
// the endpoint cannot be used to probe for registered emails.
const forgotPasswordMessage = "If an account with this email exists, you will receive password reset instructions"

type AuthService struct {
	repo   repository.UserRepository
	tokens *token.Manager
	mailer mailer.Mailer
	cache  gcache.Cache
	appUrl string
}

func NewAuthService(r repository.UserRepository, tokens *token.Manager, m mailer.Mailer) AuthUsecase {
	return &AuthService{
		repo:   r,
		tokens: tokens,
		mailer: m,
		cache:  gcache.New(1000).LRU().Expiration(time.Minute * 15).Build(),
		appUrl: os.Getenv("APP_URL"),
	}
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthOutput, error) {
	if input.Password != input.PasswordConfirm {
		return AuthOutput{}, domain.ErrPasswordMismatch
	}

	email := domain.NormalizeEmail(input.Email)

	exists, err := s.repo.UserExistsByEmail(ctx, email)
	if err != nil {
		logger.Error("Repository error checking user existence:", err)
		return AuthOutput{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return AuthOutput{}, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.HashPassword(input.Password)
	if err != nil {
		logger.Error("Password hashing error:", err)
		return AuthOutput{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		Photo:        "default.jpg",
		Role:         domain.RoleUser,
		PasswordHash: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return AuthOutput{}, err
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("Repository error creating user:", err)
		return AuthOutput{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.mailer.SendMailAsync(createdUser.Email, mailer.TemplateWelcome, map[string]any{
		"NAME": createdUser.FirstName(),
		"URL":  s.appUrl + "/me",
	}, "signup")

	return s.issueSession(createdUser)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthOutput, error) {
	email := domain.NormalizeEmail(input.Email)

	attempts, err := s.cache.Get(email)
	if err == nil {
		if attempts.(int) >= maxLoginAttempts {
			return AuthOutput{}, domain.ErrTooManyLoginAttempts
		}
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Indistinguishable from a wrong password on purpose.
		return AuthOutput{}, domain.ErrInvalidCredentials
	}

	match, err := password.ComparePassword(user.PasswordHash, input.Password)
	if err != nil {
		logger.Error("Password comparison error:", err)
		return AuthOutput{}, domain.ErrInvalidCredentials
	}

	if !match {
		currentAttempts := 1
		if attempts != nil {
			currentAttempts = attempts.(int) + 1
		}
		if err := s.cache.Set(email, currentAttempts); err != nil {
			logger.Error("Cache error updating login attempts:", err)
		}

		return AuthOutput{}, domain.ErrInvalidCredentials
	}

	s.cache.Remove(email)

	return s.issueSession(user)
}

func (s *AuthService) ForgotPassword(ctx context.Context, input ForgotPasswordInput) (ForgotPasswordOutput, error) {
	email := domain.NormalizeEmail(input.Email)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	resetToken, err := domain.NewResetToken()
	if err != nil {
		logger.Error("Failed to generate reset token:", err)
		return ForgotPasswordOutput{}, fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.repo.SetResetToken(ctx, user.ID, resetToken.Hash, resetToken.ExpiresAt); err != nil {
		logger.Error("Failed to store reset token:", err)
		return ForgotPasswordOutput{}, fmt.Errorf("failed to store reset token: %w", err)
	}

	// Sent synchronously: a delivery failure has to roll the stored token
	// back, otherwise the user is stuck with a pending token they never saw.
	resetLink := s.appUrl + "/reset-password?token=" + resetToken.Plaintext
	err = s.mailer.SendMail(user.Email, mailer.TemplatePasswordReset, map[string]any{
		"NAME":       user.FirstName(),
		"RESET_LINK": resetLink,
	})
	if err != nil {
		logger.Error("Failed to send password reset email:", err)
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			logger.Error("Failed to roll back reset token:", clearErr)
		}
		return ForgotPasswordOutput{}, domain.ErrEmailDelivery
	}

	return ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) (AuthOutput, error) {
	if input.Password != input.PasswordConfirm {
		return AuthOutput{}, domain.ErrPasswordMismatch
	}

	user, err := s.repo.GetUserByResetTokenHash(ctx, domain.HashResetToken(input.Token))
	if err != nil {
		// Expired, consumed and never-issued tokens all land here.
		return AuthOutput{}, domain.ErrUserNotFound
	}

	hashedPassword, err := password.HashPassword(input.Password)
	if err != nil {
		logger.Error("Password hashing error:", err)
		return AuthOutput{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		logger.Error("Failed to reset password:", err)
		return AuthOutput{}, fmt.Errorf("failed to reset password: %w", err)
	}

	return s.issueSession(user)
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, input UpdatePasswordInput) (AuthOutput, error) {
	if input.Password != input.PasswordConfirm {
		return AuthOutput{}, domain.ErrPasswordMismatch
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return AuthOutput{}, domain.ErrUserNotFound
	}

	match, err := password.ComparePassword(user.PasswordHash, input.PasswordCurrent)
	if err != nil {
		logger.Error("Password comparison error:", err)
		return AuthOutput{}, domain.ErrInvalidCredentials
	}
	if !match {
		return AuthOutput{}, domain.ErrInvalidCredentials
	}

	hashedPassword, err := password.HashPassword(input.Password)
	if err != nil {
		logger.Error("Password hashing error:", err)
		return AuthOutput{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		logger.Error("Failed to update password:", err)
		return AuthOutput{}, fmt.Errorf("failed to update password: %w", err)
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *domain.User) (AuthOutput, error) {
	signed, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		logger.Error("Failed to sign session token:", err)
		return AuthOutput{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return AuthOutput{
		User: UserInfo{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
			Photo: user.Photo,
			Role:  string(user.Role),
		},
		Token:     signed,
		ExpiresAt: time.Now().Add(s.tokens.TTL()).Format(time.RFC3339),
	}, nil
}
