package usecase

import "tourbook/internal/tours/domain"

type CreateTourInput struct {
	Name         string `json:"name" form:"name" validate:"required,min=10,max=40"`
	DurationDays int    `json:"durationDays" form:"durationDays" validate:"required,min=1"`
	MaxGroupSize int    `json:"maxGroupSize" form:"maxGroupSize" validate:"required,min=1"`
	Difficulty   string `json:"difficulty" form:"difficulty" validate:"required"`
	Price        int64  `json:"price" form:"price" validate:"required,gt=0"`
	Summary      string `json:"summary" form:"summary" validate:"required"`
	Description  string `json:"description" form:"description"`
}

type UpdateTourInput struct {
	Name         *string `json:"name" form:"name" validate:"omitempty,min=10,max=40"`
	DurationDays *int    `json:"durationDays" form:"durationDays" validate:"omitempty,min=1"`
	MaxGroupSize *int    `json:"maxGroupSize" form:"maxGroupSize" validate:"omitempty,min=1"`
	Difficulty   *string `json:"difficulty" form:"difficulty"`
	Price        *int64  `json:"price" form:"price" validate:"omitempty,gt=0"`
	Summary      *string `json:"summary" form:"summary"`
	Description  *string `json:"description" form:"description"`
}

type ListToursInput struct {
	Difficulty string `query:"difficulty"`
	PriceMax   int64  `query:"priceMax"`
	Sort       string `query:"sort"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

type TourResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	DurationDays    int     `json:"durationDays"`
	MaxGroupSize    int     `json:"maxGroupSize"`
	Difficulty      string  `json:"difficulty"`
	Price           int64   `json:"price"`
	Summary         string  `json:"summary"`
	Description     string  `json:"description"`
	ImageCover      string  `json:"imageCover"`
	RatingsAverage  float64 `json:"ratingsAverage"`
	RatingsQuantity int     `json:"ratingsQuantity"`
}

func ToTourResponse(tour *domain.Tour) TourResponse {
	return TourResponse{
		ID:              tour.ID.String(),
		Name:            tour.Name,
		Slug:            tour.Slug,
		DurationDays:    tour.DurationDays,
		MaxGroupSize:    tour.MaxGroupSize,
		Difficulty:      string(tour.Difficulty),
		Price:           tour.Price,
		Summary:         tour.Summary,
		Description:     tour.Description,
		ImageCover:      tour.ImageCover,
		RatingsAverage:  tour.RatingsAverage,
		RatingsQuantity: tour.RatingsQuantity,
	}
}
