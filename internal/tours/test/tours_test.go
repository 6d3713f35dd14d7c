package test

import (
	"context"
	"testing"

	"tourbook/internal/tours/domain"
	"tourbook/internal/tours/repository"
	"tourbook/internal/tours/usecase"
	"tourbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.Init()
}

func forestHike() *domain.Tour {
	return &domain.Tour{
		ID:           uuid.New(),
		Name:         "The Forest Hiker",
		Slug:         "the-forest-hiker",
		DurationDays: 5,
		MaxGroupSize: 25,
		Difficulty:   domain.DifficultyEasy,
		Price:        39700,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
	}
}

func TestCreateTour_SlugFollowsName(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTourRepository(ctrl)
	service := usecase.NewTourService(mockRepo)

	ctx := context.Background()

	mockRepo.EXPECT().
		CreateTour(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, tour *domain.Tour) (*domain.Tour, error) {
			assert.Equal(t, "the-forest-hiker", tour.Slug)
			tour.ID = uuid.New()
			return tour, nil
		})

	result, err := service.CreateTour(ctx, usecase.CreateTourInput{
		Name:         "The Forest Hiker",
		DurationDays: 5,
		MaxGroupSize: 25,
		Difficulty:   "easy",
		Price:        39700,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "the-forest-hiker", result.Slug)
}

func TestCreateTour_RejectsUnknownDifficulty(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTourRepository(ctrl)
	service := usecase.NewTourService(mockRepo)

	_, err := service.CreateTour(context.Background(), usecase.CreateTourInput{
		Name:         "The Forest Hiker",
		DurationDays: 5,
		MaxGroupSize: 25,
		Difficulty:   "impossible",
		Price:        39700,
		Summary:      "Breathtaking hike",
	}, "")

	assert.ErrorIs(t, err, domain.ErrInvalidTourDifficulty)
}

func TestCreateTour_RejectsShortName(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTourRepository(ctrl)
	service := usecase.NewTourService(mockRepo)

	_, err := service.CreateTour(context.Background(), usecase.CreateTourInput{
		Name:         "Short",
		DurationDays: 5,
		MaxGroupSize: 25,
		Difficulty:   "easy",
		Price:        39700,
		Summary:      "Breathtaking hike",
	}, "")

	assert.ErrorIs(t, err, domain.ErrInvalidTourName)
}

func TestListTours_DefaultsAndFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTourRepository(ctrl)
	service := usecase.NewTourService(mockRepo)

	ctx := context.Background()

	mockRepo.EXPECT().
		ListTours(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, filter repository.ListFilter) ([]*domain.Tour, error) {
			assert.Equal(t, domain.DifficultyEasy, filter.Difficulty)
			assert.Equal(t, int64(50000), filter.PriceMax)
			assert.Equal(t, "-ratings", filter.SortBy)
			assert.Equal(t, uint64(20), filter.Limit)
			assert.Equal(t, uint64(0), filter.Offset)
			return []*domain.Tour{forestHike()}, nil
		})

	result, err := service.ListTours(ctx, usecase.ListToursInput{
		Difficulty: "easy",
		PriceMax:   50000,
		Sort:       "-ratings",
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "The Forest Hiker", result[0].Name)
}

func TestUpdateTour_ReslugsOnRename(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTourRepository(ctrl)
	service := usecase.NewTourService(mockRepo)

	ctx := context.Background()
	tour := forestHike()
	newName := "The Mountain Biker"

	mockRepo.EXPECT().
		GetTourByID(ctx, tour.ID).
		Return(tour, nil)

	mockRepo.EXPECT().
		UpdateTour(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *domain.Tour) (*domain.Tour, error) {
			assert.Equal(t, newName, updated.Name)
			assert.Equal(t, "the-mountain-biker", updated.Slug)
			return updated, nil
		})

	result, err := service.UpdateTour(ctx, tour.ID.String(), usecase.UpdateTourInput{Name: &newName}, "")

	require.NoError(t, err)
	assert.Equal(t, "the-mountain-biker", result.Slug)
}

func TestGetTour_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTourRepository(ctrl)
	service := usecase.NewTourService(mockRepo)

	_, err := service.GetTour(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidTourID)
}

func TestDeleteTour(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTourRepository(ctrl)
	service := usecase.NewTourService(mockRepo)

	ctx := context.Background()
	tourID := uuid.New()

	mockRepo.EXPECT().
		DeleteTour(ctx, tourID).
		Return(nil)

	require.NoError(t, service.DeleteTour(ctx, tourID.String()))
}
