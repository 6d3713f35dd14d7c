package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	authdomain "tourbook/internal/auth/domain"
	authrepo "tourbook/internal/auth/repository"
	"tourbook/internal/middleware"
	"tourbook/internal/users/domain"
	"tourbook/internal/users/handler"
	"tourbook/internal/users/repository"
	"tourbook/internal/users/usecase"
	"tourbook/pkg/logger"
	"tourbook/pkg/token"
	pkgvalidator "tourbook/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.Init()
}

func activeUser() *authdomain.User {
	return &authdomain.User{
		ID:     uuid.New(),
		Name:   "Ann Smith",
		Email:  "ann@x.com",
		Photo:  "default.jpg",
		Role:   authdomain.RoleUser,
		Active: true,
	}
}

func TestUpdateProfile_Usecase(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	service := usecase.NewUserService(mockRepo)

	ctx := context.Background()
	user := activeUser()
	newName := "Ann Lee"

	mockRepo.EXPECT().
		UpdateUser(ctx, user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, patch repository.ProfilePatch) (*authdomain.User, error) {
			require.NotNil(t, patch.Name)
			assert.Equal(t, newName, *patch.Name)
			assert.Nil(t, patch.Role)
			user.Name = *patch.Name
			return user, nil
		})

	result, err := service.UpdateProfile(ctx, user.ID, usecase.UpdateMeInput{Name: &newName}, "")

	require.NoError(t, err)
	assert.Equal(t, newName, result.Name)
}

func TestDeleteUser_SoftDeletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	service := usecase.NewUserService(mockRepo)

	ctx := context.Background()
	userID := uuid.New()

	mockRepo.EXPECT().
		SetActive(ctx, userID, false).
		Return(nil)

	require.NoError(t, service.DeleteUser(ctx, userID.String()))
}

func TestGetUser_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	service := usecase.NewUserService(mockRepo)

	_, err := service.GetUser(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestUpdateUser_RejectsUnknownRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	service := usecase.NewUserService(mockRepo)

	badRole := "superadmin"
	_, err := service.UpdateUser(context.Background(), uuid.New().String(), usecase.AdminUpdateUserInput{Role: &badRole})
	assert.ErrorIs(t, err, authdomain.ErrInvalidUserRole)
}

func TestReactivateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	service := usecase.NewUserService(mockRepo)

	ctx := context.Background()
	user := activeUser()
	user.Active = false

	mockRepo.EXPECT().
		GetUserByEmailAnyStatus(ctx, "ann@x.com").
		Return(user, nil)

	mockRepo.EXPECT().
		SetActive(ctx, user.ID, true).
		Return(nil)

	result, err := service.ReactivateUser(ctx, "Ann@X.com")

	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), result.ID)
}

// credentialStub backs the Protect middleware for handler tests.
type credentialStub struct {
	authrepo.UserRepository
	user *authdomain.User
}

func (s *credentialStub) GetUserByID(_ context.Context, userID uuid.UUID) (*authdomain.User, error) {
	if s.user == nil || s.user.ID != userID {
		return nil, authdomain.ErrUserNotFound
	}
	return s.user, nil
}

func TestUpdateMe_RejectsPasswordFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	h := handler.NewUserHandler(usecase.NewUserService(mockRepo), nil)

	user := activeUser()
	tokens := token.NewManager("test-secret-test-secret-test-secret", time.Hour)
	auth := middleware.NewAuth(&credentialStub{user: user}, tokens)
	signed, err := tokens.Issue(user.ID.String())
	require.NoError(t, err)

	form := url.Values{}
	form.Set("name", "Ann Lee")
	form.Set("password", "sneaky-password")

	e := echo.New()
	e.Validator = pkgvalidator.NewEchoValidator()
	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = auth.Protect()(h.UpdateMe)(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "update-password")
}

func TestUpdateMe_RejectsPasswordFieldsInJSONBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	h := handler.NewUserHandler(usecase.NewUserService(mockRepo), nil)

	user := activeUser()
	tokens := token.NewManager("test-secret-test-secret-test-secret", time.Hour)
	auth := middleware.NewAuth(&credentialStub{user: user}, tokens)
	signed, err := tokens.Issue(user.ID.String())
	require.NoError(t, err)

	body := `{"name":"Ann Lee","password":"sneaky-password"}`

	e := echo.New()
	e.Validator = pkgvalidator.NewEchoValidator()
	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = auth.Protect()(h.UpdateMe)(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "update-password")
}
