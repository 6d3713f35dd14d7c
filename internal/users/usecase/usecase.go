package usecase

import (
	"context"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateMeInput, photoURL string) (UserProfileResponse, error)
	DeactivateMe(ctx context.Context, userID uuid.UUID) error
	ListUsers(ctx context.Context, page, limit int) ([]UserProfileResponse, error)
	GetUser(ctx context.Context, userID string) (UserProfileResponse, error)
	UpdateUser(ctx context.Context, userID string, req AdminUpdateUserInput) (UserProfileResponse, error)
	DeleteUser(ctx context.Context, userID string) error
	ReactivateUser(ctx context.Context, email string) (UserProfileResponse, error)
}
