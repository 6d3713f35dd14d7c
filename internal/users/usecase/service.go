package usecase

import (
	"context"

	authdomain "tourbook/internal/auth/domain"
	"tourbook/internal/users/domain"
	"tourbook/internal/users/repository"
	"tourbook/pkg/logger"

	"github.com/google/uuid"
)

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserUsecase {
	return &userService{
		repo: repo,
	}
}

func (u *userService) GetProfile(ctx context.Context, userID uuid.UUID) (UserProfileResponse, error) {
	user, err := u.repo.GetUserByID(ctx, userID)
	if err != nil {
		return UserProfileResponse{}, err
	}

	return ToUserProfileResponse(user), nil
}

func (u *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateMeInput, photoURL string) (UserProfileResponse, error) {
	patch := repository.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	}
	if photoURL != "" {
		patch.Photo = &photoURL
	}

	updated, err := u.repo.UpdateUser(ctx, userID, patch)
	if err != nil {
		logger.Error("failed to update profile:", err)
		return UserProfileResponse{}, err
	}

	return ToUserProfileResponse(updated), nil
}

func (u *userService) DeactivateMe(ctx context.Context, userID uuid.UUID) error {
	return u.repo.SetActive(ctx, userID, false)
}

func (u *userService) ListUsers(ctx context.Context, page, limit int) ([]UserProfileResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, err := u.repo.ListUsers(ctx, uint64(limit), uint64((page-1)*limit))
	if err != nil {
		logger.Error("failed to list users:", err)
		return nil, err
	}

	out := make([]UserProfileResponse, 0, len(users))
	for _, user := range users {
		out = append(out, ToUserProfileResponse(user))
	}

	return out, nil
}

func (u *userService) GetUser(ctx context.Context, userID string) (UserProfileResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return UserProfileResponse{}, domain.ErrInvalidUserID
	}

	return u.GetProfile(ctx, id)
}

func (u *userService) UpdateUser(ctx context.Context, userID string, req AdminUpdateUserInput) (UserProfileResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return UserProfileResponse{}, domain.ErrInvalidUserID
	}

	patch := repository.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	}

	if req.Role != nil {
		role, ok := authdomain.ParseRole(*req.Role)
		if !ok {
			return UserProfileResponse{}, authdomain.ErrInvalidUserRole
		}
		patch.Role = &role
	}

	updated, err := u.repo.UpdateUser(ctx, id, patch)
	if err != nil {
		return UserProfileResponse{}, err
	}

	return ToUserProfileResponse(updated), nil
}

func (u *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrInvalidUserID
	}

	return u.repo.SetActive(ctx, id, false)
}

// ReactivateUser flips a soft-deleted account back on. This is the one flow
// that reads past the active filter.
func (u *userService) ReactivateUser(ctx context.Context, email string) (UserProfileResponse, error) {
	user, err := u.repo.GetUserByEmailAnyStatus(ctx, authdomain.NormalizeEmail(email))
	if err != nil {
		return UserProfileResponse{}, err
	}

	if !user.Active {
		if err := u.repo.SetActive(ctx, user.ID, true); err != nil {
			logger.Error("failed to reactivate user:", err)
			return UserProfileResponse{}, err
		}
		user.Active = true
	}

	return ToUserProfileResponse(user), nil
}
