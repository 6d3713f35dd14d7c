package usecase

import (
	"context"
)

type TourUsecase interface {
	CreateTour(ctx context.Context, req CreateTourInput, coverURL string) (TourResponse, error)
	GetTour(ctx context.Context, tourID string) (TourResponse, error)
	ListTours(ctx context.Context, req ListToursInput) ([]TourResponse, error)
	UpdateTour(ctx context.Context, tourID string, req UpdateTourInput, coverURL string) (TourResponse, error)
	DeleteTour(ctx context.Context, tourID string) error
}
