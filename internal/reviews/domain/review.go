package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `json:"id"`
	TourID    uuid.UUID `json:"tourId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Content   string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyReview     = errors.New("review text is required")
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("you have already reviewed this tour")
	ErrInvalidReviewID = errors.New("invalid review id")
	ErrNotReviewAuthor = errors.New("you can only modify your own reviews")
)

func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if r.Content == "" {
		return ErrEmptyReview
	}
	return nil
}
