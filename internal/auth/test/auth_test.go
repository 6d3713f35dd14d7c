package test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tourbook/internal/auth/domain"
	"tourbook/internal/auth/usecase"
	"tourbook/pkg/logger"
	"tourbook/pkg/mailer"
	"tourbook/pkg/password"
	"tourbook/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.Init()
}

type sendCall struct {
	to       string
	template mailer.Template
	data     map[string]any
}

type mockMailer struct {
	sendCalls []sendCall
	sendErr   error
}

var _ mailer.Mailer = (*mockMailer)(nil)

func (m *mockMailer) SendMail(to string, template mailer.Template, data map[string]any) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sendCalls = append(m.sendCalls, sendCall{to: to, template: template, data: data})
	return nil
}

func (m *mockMailer) SendMailAsync(to string, template mailer.Template, data map[string]any, operationName string) {
	// Synchronous in tests to avoid races.
	_ = m.SendMail(to, template, data)
}

func setupService(t *testing.T) (*MockUserRepository, *mockMailer, *token.Manager, usecase.AuthUsecase) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	mail := &mockMailer{}
	tokens := token.NewManager("test-secret-test-secret-test-secret", time.Hour)

	service := usecase.NewAuthService(mockRepo, tokens, mail)
	return mockRepo, mail, tokens, service
}

func TestSignup_Success(t *testing.T) {
	mockRepo, mail, tokens, service := setupService(t)

	ctx := context.Background()
	input := usecase.SignupInput{
		Name:            "Ann Smith",
		Email:           "Ann@X.com",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	}

	userID := uuid.New()
	var storedHash string

	mockRepo.EXPECT().
		UserExistsByEmail(ctx, "ann@x.com").
		Return(false, nil)

	mockRepo.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
			storedHash = user.PasswordHash
			user.ID = userID
			return user, nil
		})

	result, err := service.Signup(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, userID.String(), result.User.ID)
	assert.Equal(t, "ann@x.com", result.User.Email)
	assert.Equal(t, "user", result.User.Role)

	// The plaintext is never what gets stored.
	assert.NotEqual(t, "secret123", storedHash)
	match, err := password.ComparePassword(storedHash, "secret123")
	require.NoError(t, err)
	assert.True(t, match)

	// The returned session token verifies and names the new user.
	subject, _, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)

	require.Len(t, mail.sendCalls, 1)
	assert.Equal(t, mailer.TemplateWelcome, mail.sendCalls[0].template)
	assert.Equal(t, "ann@x.com", mail.sendCalls[0].to)
	assert.Equal(t, "Ann", mail.sendCalls[0].data["NAME"])
}

func TestSignup_PasswordMismatch(t *testing.T) {
	_, _, _, service := setupService(t)

	_, err := service.Signup(context.Background(), usecase.SignupInput{
		Name:            "Ann Smith",
		Email:           "ann@x.com",
		Password:        "secret123",
		PasswordConfirm: "secret124",
	})

	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
}

func TestSignup_UserAlreadyExists(t *testing.T) {
	mockRepo, _, _, service := setupService(t)
	ctx := context.Background()

	mockRepo.EXPECT().
		UserExistsByEmail(ctx, "ann@x.com").
		Return(true, nil)

	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:            "Ann Smith",
		Email:           "ann@x.com",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestSignup_DuplicateEmailRace(t *testing.T) {
	mockRepo, _, _, service := setupService(t)
	ctx := context.Background()

	// The exists pre-check passes, then the insert loses a race against a
	// concurrent signup for the same email. The caller still sees the
	// conflict sentinel, not a wrapped storage error.
	mockRepo.EXPECT().
		UserExistsByEmail(ctx, "ann@x.com").
		Return(false, nil)

	mockRepo.EXPECT().
		CreateUser(ctx, gomock.Any()).
		Return(nil, domain.ErrUserAlreadyExists)

	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:            "Ann Smith",
		Email:           "ann@x.com",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func activeUser(t *testing.T, plaintext string) *domain.User {
	t.Helper()
	hash, err := password.HashPassword(plaintext)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Name:         "Ann Smith",
		Email:        "ann@x.com",
		Photo:        "default.jpg",
		Role:         domain.RoleUser,
		PasswordHash: hash,
		Active:       true,
	}
}

func TestLogin_Success(t *testing.T) {
	mockRepo, _, tokens, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "ann@x.com").
		Return(user, nil)

	result, err := service.Login(ctx, usecase.LoginInput{Email: "ann@x.com", Password: "secret123"})

	require.NoError(t, err)
	subject, _, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockRepo, _, _, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "ann@x.com").
		Return(user, nil)

	_, err := service.Login(ctx, usecase.LoginInput{Email: "ann@x.com", Password: "wrong-password"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	mockRepo, _, _, service := setupService(t)
	ctx := context.Background()

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "ghost@x.com").
		Return(nil, domain.ErrUserNotFound)

	_, err := service.Login(ctx, usecase.LoginInput{Email: "ghost@x.com", Password: "secret123"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_AttemptLimit(t *testing.T) {
	mockRepo, _, _, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "ann@x.com").
		Return(user, nil).
		Times(5)

	for i := 0; i < 5; i++ {
		_, err := service.Login(ctx, usecase.LoginInput{Email: "ann@x.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// Sixth attempt is refused before the store is consulted.
	_, err := service.Login(ctx, usecase.LoginInput{Email: "ann@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrTooManyLoginAttempts)
}

func resetLinkToken(t *testing.T, call sendCall) string {
	t.Helper()
	link, ok := call.data["RESET_LINK"].(string)
	require.True(t, ok)
	idx := strings.Index(link, "token=")
	require.GreaterOrEqual(t, idx, 0)
	return link[idx+len("token="):]
}

func TestForgotPassword_Success(t *testing.T) {
	mockRepo, mail, _, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")

	var storedHash string
	var storedExpiry time.Time

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "ann@x.com").
		Return(user, nil)

	mockRepo.EXPECT().
		SetResetToken(ctx, user.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string, expiresAt time.Time) error {
			storedHash = hash
			storedExpiry = expiresAt
			return nil
		})

	result, err := service.ForgotPassword(ctx, usecase.ForgotPasswordInput{Email: "ann@x.com"})

	require.NoError(t, err)
	assert.Contains(t, result.Message, "If an account with this email exists")

	require.Len(t, mail.sendCalls, 1)
	assert.Equal(t, mailer.TemplatePasswordReset, mail.sendCalls[0].template)

	// Only the hash is persisted; the mailed plaintext must recompute to it.
	plaintext := resetLinkToken(t, mail.sendCalls[0])
	assert.Len(t, plaintext, 64)
	assert.Equal(t, domain.HashResetToken(plaintext), storedHash)
	assert.WithinDuration(t, time.Now().Add(domain.ResetTokenTTL), storedExpiry, 2*time.Second)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	mockRepo, mail, _, service := setupService(t)
	ctx := context.Background()

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "ghost@x.com").
		Return(nil, domain.ErrUserNotFound)

	result, err := service.ForgotPassword(ctx, usecase.ForgotPasswordInput{Email: "ghost@x.com"})

	// Same answer as the success path, and no email goes out.
	require.NoError(t, err)
	assert.Contains(t, result.Message, "If an account with this email exists")
	assert.Empty(t, mail.sendCalls)
}

func TestForgotPassword_DeliveryFailureRollsBack(t *testing.T) {
	mockRepo, mail, _, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")
	mail.sendErr = errors.New("smtp unreachable")

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "ann@x.com").
		Return(user, nil)

	mockRepo.EXPECT().
		SetResetToken(ctx, user.ID, gomock.Any(), gomock.Any()).
		Return(nil)

	mockRepo.EXPECT().
		ClearResetToken(ctx, user.ID).
		Return(nil)

	_, err := service.ForgotPassword(ctx, usecase.ForgotPasswordInput{Email: "ann@x.com"})

	assert.ErrorIs(t, err, domain.ErrEmailDelivery)
}

func TestResetPassword_Success(t *testing.T) {
	mockRepo, _, tokens, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")

	resetToken, err := domain.NewResetToken()
	require.NoError(t, err)

	var newHash string

	mockRepo.EXPECT().
		GetUserByResetTokenHash(ctx, resetToken.Hash).
		Return(user, nil)

	mockRepo.EXPECT().
		UpdatePassword(ctx, user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string) error {
			newHash = hash
			return nil
		})

	result, err := service.ResetPassword(ctx, usecase.ResetPasswordInput{
		Token:           resetToken.Plaintext,
		Password:        "newsecret123",
		PasswordConfirm: "newsecret123",
	})

	require.NoError(t, err)
	match, err := password.ComparePassword(newHash, "newsecret123")
	require.NoError(t, err)
	assert.True(t, match)

	subject, _, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestResetPassword_ConsumedOrExpiredToken(t *testing.T) {
	mockRepo, _, _, service := setupService(t)
	ctx := context.Background()

	resetToken, err := domain.NewResetToken()
	require.NoError(t, err)

	// A consumed token, an expired token and a fabricated one all miss the
	// lookup the same way.
	mockRepo.EXPECT().
		GetUserByResetTokenHash(ctx, resetToken.Hash).
		Return(nil, domain.ErrUserNotFound)

	_, err = service.ResetPassword(ctx, usecase.ResetPasswordInput{
		Token:           resetToken.Plaintext,
		Password:        "newsecret123",
		PasswordConfirm: "newsecret123",
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdatePassword_Success(t *testing.T) {
	mockRepo, _, tokens, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")

	mockRepo.EXPECT().
		GetUserByID(ctx, user.ID).
		Return(user, nil)

	mockRepo.EXPECT().
		UpdatePassword(ctx, user.ID, gomock.Any()).
		Return(nil)

	result, err := service.UpdatePassword(ctx, user.ID, usecase.UpdatePasswordInput{
		PasswordCurrent: "secret123",
		Password:        "NewSecret123!",
		PasswordConfirm: "NewSecret123!",
	})

	require.NoError(t, err)
	subject, _, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestUpdatePassword_WrongCurrentPassword(t *testing.T) {
	mockRepo, _, _, service := setupService(t)
	ctx := context.Background()
	user := activeUser(t, "secret123")

	mockRepo.EXPECT().
		GetUserByID(ctx, user.ID).
		Return(user, nil)

	_, err := service.UpdatePassword(ctx, user.ID, usecase.UpdatePasswordInput{
		PasswordCurrent: "wrong-password",
		Password:        "NewSecret123!",
		PasswordConfirm: "NewSecret123!",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
