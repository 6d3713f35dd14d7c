package repository

import (
	"context"
	"time"

	"tourbook/internal/auth/domain"

	"github.com/google/uuid"
)

// UserRepository is the credential store. Reads are scoped to active users;
// the single AnyStatus variant is the explicit override for flows that must
// see soft-deleted records (signup uniqueness, re-activation).
//
//go:generate mockgen -destination=../test/mock_user_repository.go -package=test tourbook/internal/auth/repository UserRepository
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmailAnyStatus(ctx context.Context, email string) (*domain.User, error)
	GetUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPasswordHash string) error
}
