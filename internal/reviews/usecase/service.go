package usecase

import (
	"context"

	"tourbook/internal/reviews/domain"
	"tourbook/internal/reviews/repository"
	toursdomain "tourbook/internal/tours/domain"
	"tourbook/pkg/logger"

	"github.com/google/uuid"
)

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ReviewUsecase {
	return &reviewService{
		repo: repo,
	}
}

func (r *reviewService) CreateReview(ctx context.Context, tourID string, authorID uuid.UUID, req CreateReviewInput) (ReviewResponse, error) {
	tid, err := uuid.Parse(tourID)
	if err != nil {
		return ReviewResponse{}, toursdomain.ErrInvalidTourID
	}

	review := &domain.Review{
		TourID:  tid,
		UserID:  authorID,
		Rating:  req.Rating,
		Content: req.Content,
	}

	if err := review.Validate(); err != nil {
		return ReviewResponse{}, err
	}

	created, err := r.repo.CreateReview(ctx, review)
	if err != nil {
		return ReviewResponse{}, err
	}

	if err := r.repo.RefreshTourStats(ctx, tid); err != nil {
		logger.Error("failed to refresh tour rating stats:", err)
	}

	return ToReviewResponse(created), nil
}

func (r *reviewService) ListReviews(ctx context.Context, tourID string, page, limit int) ([]ReviewResponse, error) {
	tid, err := uuid.Parse(tourID)
	if err != nil {
		return nil, toursdomain.ErrInvalidTourID
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	reviews, err := r.repo.ListReviewsByTour(ctx, tid, uint64(limit), uint64((page-1)*limit))
	if err != nil {
		logger.Error("failed to list reviews:", err)
		return nil, err
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, ToReviewResponse(review))
	}

	return out, nil
}

func (r *reviewService) DeleteReview(ctx context.Context, reviewID string, requesterID uuid.UUID, isAdmin bool) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return domain.ErrInvalidReviewID
	}

	review, err := r.repo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && review.UserID != requesterID {
		return domain.ErrNotReviewAuthor
	}

	if err := r.repo.DeleteReview(ctx, id); err != nil {
		return err
	}

	if err := r.repo.RefreshTourStats(ctx, review.TourID); err != nil {
		logger.Error("failed to refresh tour rating stats:", err)
	}

	return nil
}
