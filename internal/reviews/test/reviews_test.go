package test

import (
	"context"
	"testing"

	"tourbook/internal/reviews/domain"
	"tourbook/internal/reviews/usecase"
	toursdomain "tourbook/internal/tours/domain"
	"tourbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.Init()
}

func TestCreateReview_RefreshesTourStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockReviewRepository(ctrl)
	service := usecase.NewReviewService(mockRepo)

	ctx := context.Background()
	tourID := uuid.New()
	authorID := uuid.New()

	mockRepo.EXPECT().
		CreateReview(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, review *domain.Review) (*domain.Review, error) {
			assert.Equal(t, tourID, review.TourID)
			assert.Equal(t, authorID, review.UserID)
			review.ID = uuid.New()
			return review, nil
		})

	mockRepo.EXPECT().
		RefreshTourStats(ctx, tourID).
		Return(nil)

	result, err := service.CreateReview(ctx, tourID.String(), authorID, usecase.CreateReviewInput{
		Rating:  5,
		Content: "Unforgettable week in the mountains",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, result.Rating)
}

func TestCreateReview_RejectsOutOfRangeRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockReviewRepository(ctrl)
	service := usecase.NewReviewService(mockRepo)

	_, err := service.CreateReview(context.Background(), uuid.NewString(), uuid.New(), usecase.CreateReviewInput{
		Rating:  6,
		Content: "Too good to rate",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRating)
}

func TestCreateReview_InvalidTourID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockReviewRepository(ctrl)
	service := usecase.NewReviewService(mockRepo)

	_, err := service.CreateReview(context.Background(), "not-a-uuid", uuid.New(), usecase.CreateReviewInput{
		Rating:  4,
		Content: "Nice tour",
	})

	assert.ErrorIs(t, err, toursdomain.ErrInvalidTourID)
}

func TestDeleteReview_AuthorCanDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockReviewRepository(ctrl)
	service := usecase.NewReviewService(mockRepo)

	ctx := context.Background()
	authorID := uuid.New()
	review := &domain.Review{ID: uuid.New(), TourID: uuid.New(), UserID: authorID, Rating: 4}

	mockRepo.EXPECT().GetReviewByID(ctx, review.ID).Return(review, nil)
	mockRepo.EXPECT().DeleteReview(ctx, review.ID).Return(nil)
	mockRepo.EXPECT().RefreshTourStats(ctx, review.TourID).Return(nil)

	require.NoError(t, service.DeleteReview(ctx, review.ID.String(), authorID, false))
}

func TestDeleteReview_StrangerForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockReviewRepository(ctrl)
	service := usecase.NewReviewService(mockRepo)

	ctx := context.Background()
	review := &domain.Review{ID: uuid.New(), TourID: uuid.New(), UserID: uuid.New(), Rating: 4}

	mockRepo.EXPECT().GetReviewByID(ctx, review.ID).Return(review, nil)

	err := service.DeleteReview(ctx, review.ID.String(), uuid.New(), false)
	assert.ErrorIs(t, err, domain.ErrNotReviewAuthor)
}

func TestDeleteReview_AdminOverridesOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockReviewRepository(ctrl)
	service := usecase.NewReviewService(mockRepo)

	ctx := context.Background()
	review := &domain.Review{ID: uuid.New(), TourID: uuid.New(), UserID: uuid.New(), Rating: 2}

	mockRepo.EXPECT().GetReviewByID(ctx, review.ID).Return(review, nil)
	mockRepo.EXPECT().DeleteReview(ctx, review.ID).Return(nil)
	mockRepo.EXPECT().RefreshTourStats(ctx, review.TourID).Return(nil)

	require.NoError(t, service.DeleteReview(ctx, review.ID.String(), uuid.New(), true))
}
