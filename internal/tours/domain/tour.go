package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return Difficulty(s), true
	}
	return "", false
}

type Tour struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	DurationDays    int        `json:"durationDays"`
	MaxGroupSize    int        `json:"maxGroupSize"`
	Difficulty      Difficulty `json:"difficulty"`
	Price           int64      `json:"price"`
	Summary         string     `json:"summary"`
	Description     string     `json:"description"`
	ImageCover      string     `json:"imageCover"`
	RatingsAverage  float64    `json:"ratingsAverage"`
	RatingsQuantity int        `json:"ratingsQuantity"`
	CreatedAt       time.Time  `json:"createdAt"`
}

var (
	ErrInvalidTourName       = errors.New("tour name must be between 10 and 40 characters")
	ErrInvalidTourDuration   = errors.New("tour duration must be at least one day")
	ErrInvalidTourGroupSize  = errors.New("tour group size must be at least one")
	ErrInvalidTourDifficulty = errors.New("difficulty is one of easy, medium, difficult")
	ErrInvalidTourPrice      = errors.New("tour price must be positive")
	ErrInvalidTourSummary    = errors.New("tour summary is required")
	ErrTourNotFound          = errors.New("tour not found")
	ErrTourNameTaken         = errors.New("tour with this name already exists")
	ErrInvalidTourID         = errors.New("invalid tour id")
)

func (t *Tour) Validate() error {
	if len(t.Name) < 10 || len(t.Name) > 40 {
		return ErrInvalidTourName
	}
	if t.DurationDays < 1 {
		return ErrInvalidTourDuration
	}
	if t.MaxGroupSize < 1 {
		return ErrInvalidTourGroupSize
	}
	if _, ok := ParseDifficulty(string(t.Difficulty)); !ok {
		return ErrInvalidTourDifficulty
	}
	if t.Price <= 0 {
		return ErrInvalidTourPrice
	}
	if t.Summary == "" {
		return ErrInvalidTourSummary
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
