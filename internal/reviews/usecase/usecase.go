package usecase

import (
	"context"

	"github.com/google/uuid"
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, tourID string, authorID uuid.UUID, req CreateReviewInput) (ReviewResponse, error)
	ListReviews(ctx context.Context, tourID string, page, limit int) ([]ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string, requesterID uuid.UUID, isAdmin bool) error
}
