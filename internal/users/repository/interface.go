package repository

import (
	"context"

	authdomain "tourbook/internal/auth/domain"

	"github.com/google/uuid"
)

// ProfilePatch carries the only fields a profile update may touch. Password
// material is deliberately absent: the credential store owns that path.
type ProfilePatch struct {
	Name  *string
	Email *string
	Photo *string
	Role  *authdomain.Role
}

//go:generate mockgen -destination=../test/mock_user_repository.go -package=test tourbook/internal/users/repository UserRepository
type UserRepository interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*authdomain.User, error)
	ListUsers(ctx context.Context, limit, offset uint64) ([]*authdomain.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*authdomain.User, error)
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	GetUserByEmailAnyStatus(ctx context.Context, email string) (*authdomain.User, error)
}
