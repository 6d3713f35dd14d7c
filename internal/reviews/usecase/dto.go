package usecase

import "tourbook/internal/reviews/domain"

type CreateReviewInput struct {
	Rating  int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Content string `json:"review" form:"review" validate:"required"`
}

type ReviewResponse struct {
	ID      string `json:"id"`
	TourID  string `json:"tourId"`
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Content string `json:"review"`
}

func ToReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID.String(),
		TourID:  review.TourID.String(),
		UserID:  review.UserID.String(),
		Rating:  review.Rating,
		Content: review.Content,
	}
}
