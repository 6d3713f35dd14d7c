package repository

import (
	"context"
	"errors"

	"tourbook/internal/database"
	"tourbook/internal/reviews/domain"
	toursdomain "tourbook/internal/tours/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var reviewColumns = []string{"id", "tour_id", "user_id", "rating", "content", "created_at"}

type ReviewStore struct {
	db database.Service
}

func NewReviewStore(db database.Service) ReviewRepository {
	return &ReviewStore{
		db: db,
	}
}

func selectReviews() sq.SelectBuilder {
	return sq.Select(reviewColumns...).From("reviews").PlaceholderFormat(sq.Dollar)
}

func (s *ReviewStore) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	query := `INSERT INTO reviews (tour_id, user_id, rating, content)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`

	err := s.db.Pool().QueryRow(ctx, query,
		review.TourID, review.UserID, review.Rating, review.Content,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, domain.ErrDuplicateReview
			case "23503":
				return nil, toursdomain.ErrTourNotFound
			}
		}
		return nil, err
	}

	return review, nil
}

func (s *ReviewStore) GetReviewByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	sqlStr, args, err := selectReviews().Where(sq.Eq{"id": reviewID}).ToSql()
	if err != nil {
		return nil, err
	}

	review := &domain.Review{}
	err = scanReview(s.db.Pool().QueryRow(ctx, sqlStr, args...), review)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}

	return review, nil
}

func (s *ReviewStore) ListReviewsByTour(ctx context.Context, tourID uuid.UUID, limit, offset uint64) ([]*domain.Review, error) {
	builder := selectReviews().
		Where(sq.Eq{"tour_id": tourID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		builder = builder.Limit(limit)
	}
	if offset > 0 {
		builder = builder.Offset(offset)
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

	var reviews []*domain.Review
	for rows.Next() {
		review := &domain.Review{}
		if err := scanReview(rows, review); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (s *ReviewStore) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	commandTag, err := s.db.Pool().Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}

// RefreshTourStats recomputes the denormalized rating columns on the tour
// from its current reviews. 4.5 over zero reviews keeps new tours from
// sorting to the bottom.
func (s *ReviewStore) RefreshTourStats(ctx context.Context, tourID uuid.UUID) error {
	query := `UPDATE tours SET
			  ratings_quantity = stats.qty,
			  ratings_average = stats.avg
			  FROM (
			      SELECT COUNT(*) AS qty, COALESCE(AVG(rating), 4.5) AS avg
			      FROM reviews WHERE tour_id = $1
			  ) AS stats
			  WHERE tours.id = $1`

	_, err := s.db.Pool().Exec(ctx, query, tourID)
	return err
}

func scanReview(row pgx.Row, review *domain.Review) error {
	return row.Scan(
		&review.ID,
		&review.TourID,
		&review.UserID,
		&review.Rating,
		&review.Content,
		&review.CreatedAt,
	)
}
