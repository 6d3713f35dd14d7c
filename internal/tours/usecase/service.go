package usecase

import (
	"context"

	"tourbook/internal/tours/domain"
	"tourbook/internal/tours/repository"
	"tourbook/pkg/logger"

	"github.com/google/uuid"
)

type tourService struct {
	repo repository.TourRepository
}

func NewTourService(repo repository.TourRepository) TourUsecase {
	return &tourService{
		repo: repo,
	}
}

func (t *tourService) CreateTour(ctx context.Context, req CreateTourInput, coverURL string) (TourResponse, error) {
	difficulty, ok := domain.ParseDifficulty(req.Difficulty)
	if !ok {
		return TourResponse{}, domain.ErrInvalidTourDifficulty
	}

	tour := &domain.Tour{
		Name:         req.Name,
		Slug:         domain.Slugify(req.Name),
		DurationDays: req.DurationDays,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   difficulty,
		Price:        req.Price,
		Summary:      req.Summary,
		Description:  req.Description,
		ImageCover:   coverURL,
	}

	if err := tour.Validate(); err != nil {
		return TourResponse{}, err
	}

	created, err := t.repo.CreateTour(ctx, tour)
	if err != nil {
		logger.Error("failed to create tour:", err)
		return TourResponse{}, err
	}

	return ToTourResponse(created), nil
}

func (t *tourService) GetTour(ctx context.Context, tourID string) (TourResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return TourResponse{}, domain.ErrInvalidTourID
	}

	tour, err := t.repo.GetTourByID(ctx, id)
	if err != nil {
		return TourResponse{}, err
	}

	return ToTourResponse(tour), nil
}

func (t *tourService) ListTours(ctx context.Context, req ListToursInput) ([]TourResponse, error) {
	filter := repository.ListFilter{
		PriceMax: req.PriceMax,
		SortBy:   req.Sort,
	}

	if req.Difficulty != "" {
		difficulty, ok := domain.ParseDifficulty(req.Difficulty)
		if !ok {
			return nil, domain.ErrInvalidTourDifficulty
		}
		filter.Difficulty = difficulty
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	filter.Limit = uint64(limit)
	filter.Offset = uint64((page - 1) * limit)

	tours, err := t.repo.ListTours(ctx, filter)
	if err != nil {
		logger.Error("failed to list tours:", err)
		return nil, err
	}

	out := make([]TourResponse, 0, len(tours))
	for _, tour := range tours {
		out = append(out, ToTourResponse(tour))
	}

	return out, nil
}

func (t *tourService) UpdateTour(ctx context.Context, tourID string, req UpdateTourInput, coverURL string) (TourResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return TourResponse{}, domain.ErrInvalidTourID
	}

	tour, err := t.repo.GetTourByID(ctx, id)
	if err != nil {
		return TourResponse{}, err
	}

	if req.Name != nil {
		tour.Name = *req.Name
		// The slug follows the name so bookmarked catalog links stay readable.
		tour.Slug = domain.Slugify(*req.Name)
	}
	if req.DurationDays != nil {
		tour.DurationDays = *req.DurationDays
	}
	if req.MaxGroupSize != nil {
		tour.MaxGroupSize = *req.MaxGroupSize
	}
	if req.Difficulty != nil {
		difficulty, ok := domain.ParseDifficulty(*req.Difficulty)
		if !ok {
			return TourResponse{}, domain.ErrInvalidTourDifficulty
		}
		tour.Difficulty = difficulty
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.Summary != nil {
		tour.Summary = *req.Summary
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if coverURL != "" {
		tour.ImageCover = coverURL
	}

	if err := tour.Validate(); err != nil {
		return TourResponse{}, err
	}

	updated, err := t.repo.UpdateTour(ctx, tour)
	if err != nil {
		logger.Error("failed to update tour:", err)
		return TourResponse{}, err
	}

	return ToTourResponse(updated), nil
}

func (t *tourService) DeleteTour(ctx context.Context, tourID string) error {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return domain.ErrInvalidTourID
	}

	return t.repo.DeleteTour(ctx, id)
}
