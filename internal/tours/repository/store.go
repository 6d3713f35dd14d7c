package repository

import (
	"context"
	"errors"

	"tourbook/internal/database"
	"tourbook/internal/tours/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var tourColumns = []string{
	"id", "name", "slug", "duration_days", "max_group_size", "difficulty",
	"price", "summary", "description", "image_cover", "ratings_average",
	"ratings_quantity", "created_at",
}

type TourStore struct {
	db database.Service
}

func NewTourStore(db database.Service) TourRepository {
	return &TourStore{
		db: db,
	}
}

func selectTours() sq.SelectBuilder {
	return sq.Select(tourColumns...).From("tours").PlaceholderFormat(sq.Dollar)
}

func (s *TourStore) CreateTour(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	query := `INSERT INTO tours (name, slug, duration_days, max_group_size, difficulty,
			  price, summary, description, image_cover)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, ratings_average, ratings_quantity, created_at`

	err := s.db.Pool().QueryRow(ctx, query,
		tour.Name, tour.Slug, tour.DurationDays, tour.MaxGroupSize, tour.Difficulty,
		tour.Price, tour.Summary, tour.Description, tour.ImageCover,
	).Scan(&tour.ID, &tour.RatingsAverage, &tour.RatingsQuantity, &tour.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrTourNameTaken
		}
		return nil, err
	}

	return tour, nil
}

func (s *TourStore) GetTourByID(ctx context.Context, tourID uuid.UUID) (*domain.Tour, error) {
	return s.queryOne(ctx, selectTours().Where(sq.Eq{"id": tourID}))
}

func (s *TourStore) ListTours(ctx context.Context, filter ListFilter) ([]*domain.Tour, error) {
	builder := selectTours()

	if filter.Difficulty != "" {
		builder = builder.Where(sq.Eq{"difficulty": filter.Difficulty})
	}
	if filter.PriceMax > 0 {
		builder = builder.Where(sq.LtOrEq{"price": filter.PriceMax})
	}

	switch filter.SortBy {
	case "price":
		builder = builder.OrderBy("price ASC")
	case "-price":
		builder = builder.OrderBy("price DESC")
	case "ratings":
		builder = builder.OrderBy("ratings_average ASC")
	case "-ratings":
		builder = builder.OrderBy("ratings_average DESC")
	default:
		builder = builder.OrderBy("created_at DESC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool().Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []*domain.Tour
	for rows.Next() {
		tour := &domain.Tour{}
		if err := scanTour(rows, tour); err != nil {
			return nil, err
		}
		tours = append(tours, tour)
	}

	return tours, rows.Err()
}

func (s *TourStore) UpdateTour(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	query := `UPDATE tours SET name = $2, slug = $3, duration_days = $4,
			  max_group_size = $5, difficulty = $6, price = $7, summary = $8,
			  description = $9, image_cover = $10, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ratings_average, ratings_quantity, created_at`

	err := s.db.Pool().QueryRow(ctx, query,
		tour.ID, tour.Name, tour.Slug, tour.DurationDays, tour.MaxGroupSize,
		tour.Difficulty, tour.Price, tour.Summary, tour.Description, tour.ImageCover,
	).Scan(&tour.RatingsAverage, &tour.RatingsQuantity, &tour.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTourNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrTourNameTaken
		}
		return nil, err
	}

	return tour, nil
}

func (s *TourStore) DeleteTour(ctx context.Context, tourID uuid.UUID) error {
	commandTag, err := s.db.Pool().Exec(ctx, `DELETE FROM tours WHERE id = $1`, tourID)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrTourNotFound
	}

	return nil
}

func (s *TourStore) queryOne(ctx context.Context, builder sq.SelectBuilder) (*domain.Tour, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	tour := &domain.Tour{}
	err = scanTour(s.db.Pool().QueryRow(ctx, sqlStr, args...), tour)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTourNotFound
		}
		return nil, err
	}

	return tour, nil
}

func scanTour(row pgx.Row, tour *domain.Tour) error {
	return row.Scan(
		&tour.ID,
		&tour.Name,
		&tour.Slug,
		&tour.DurationDays,
		&tour.MaxGroupSize,
		&tour.Difficulty,
		&tour.Price,
		&tour.Summary,
		&tour.Description,
		&tour.ImageCover,
		&tour.RatingsAverage,
		&tour.RatingsQuantity,
		&tour.CreatedAt,
	)
}
