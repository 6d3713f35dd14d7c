package repository

import (
	"context"

	"tourbook/internal/tours/domain"

	"github.com/google/uuid"
)

// ListFilter narrows and orders the catalog listing. Zero values mean "no
// constraint".
type ListFilter struct {
	Difficulty domain.Difficulty
	PriceMax   int64
	SortBy     string // "price", "-price", "ratings", "-ratings"
	Limit      uint64
	Offset     uint64
}

//go:generate mockgen -destination=../test/mock_tour_repository.go -package=test tourbook/internal/tours/repository TourRepository
type TourRepository interface {
	CreateTour(ctx context.Context, tour *domain.Tour) (*domain.Tour, error)
	GetTourByID(ctx context.Context, tourID uuid.UUID) (*domain.Tour, error)
	ListTours(ctx context.Context, filter ListFilter) ([]*domain.Tour, error)
	UpdateTour(ctx context.Context, tour *domain.Tour) (*domain.Tour, error)
	DeleteTour(ctx context.Context, tourID uuid.UUID) error
}
