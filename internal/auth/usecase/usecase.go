package usecase

import (
	"context"

	"github.com/google/uuid"
)

type AuthUsecase interface {
	Signup(ctx context.Context, input SignupInput) (AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (AuthOutput, error)
	ForgotPassword(ctx context.Context, input ForgotPasswordInput) (ForgotPasswordOutput, error)
	ResetPassword(ctx context.Context, input ResetPasswordInput) (AuthOutput, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, input UpdatePasswordInput) (AuthOutput, error)
}
