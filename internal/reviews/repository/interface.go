package repository

import (
	"context"

	"tourbook/internal/reviews/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_review_repository.go -package=test tourbook/internal/reviews/repository ReviewRepository
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetReviewByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	ListReviewsByTour(ctx context.Context, tourID uuid.UUID, limit, offset uint64) ([]*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
	RefreshTourStats(ctx context.Context, tourID uuid.UUID) error
}
