package repository

import (
	"context"
	"errors"
	"time"

	"tourbook/internal/auth/domain"
	"tourbook/internal/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var userColumns = []string{
	"id", "name", "email", "photo", "role", "password_hash",
	"password_changed_at", "password_reset_token_hash",
	"password_reset_expires_at", "active",
}

type UserStore struct {
	db database.Service
}

func NewUserStore(db database.Service) UserRepository {
	return &UserStore{
		db: db,
	}
}

func selectUsers() sq.SelectBuilder {
	return sq.Select(userColumns...).From("users").PlaceholderFormat(sq.Dollar)
}

// onlyActive is composed into every standard read so soft-deleted users
// cannot surface by accident. The AnyStatus variants skip it on purpose.
func onlyActive(b sq.SelectBuilder) sq.SelectBuilder {
	return b.Where(sq.Eq{"active": true})
}

func byEmail(email string) sq.SelectBuilder {
	return onlyActive(selectUsers().Where(sq.Eq{"email": email}))
}

func byID(userID uuid.UUID) sq.SelectBuilder {
	return onlyActive(selectUsers().Where(sq.Eq{"id": userID}))
}

func byEmailAnyStatus(email string) sq.SelectBuilder {
	return selectUsers().Where(sq.Eq{"email": email})
}

func byResetTokenHash(tokenHash string) sq.SelectBuilder {
	return onlyActive(selectUsers().
		Where(sq.Eq{"password_reset_token_hash": tokenHash}).
		Where(sq.Expr("password_reset_expires_at > NOW()")))
}

func (s *UserStore) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (name, email, photo, role, password_hash)
			  VALUES ($1, $2, $3, $4::user_role, $5)
			  RETURNING id`

	err := s.db.Pool().QueryRow(ctx, query,
		user.Name, user.Email, user.Photo, user.Role, user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		// Two signups can pass the exists pre-check at once; the loser of
		// the race lands on the unique email constraint and gets the same
		// answer a sequential duplicate would.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}

	user.Active = true
	return user, nil
}

func (s *UserStore) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	// Deliberately ignores the active flag: the email stays claimed by a
	// soft-deleted account.
	query := `SELECT 1 FROM users WHERE email = $1 LIMIT 1`

	var exists int
	err := s.db.Pool().QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.queryOne(ctx, byEmail(email))
}

func (s *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.queryOne(ctx, byID(userID))
}

func (s *UserStore) GetUserByEmailAnyStatus(ctx context.Context, email string) (*domain.User, error) {
	return s.queryOne(ctx, byEmailAnyStatus(email))
}

func (s *UserStore) GetUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return s.queryOne(ctx, byResetTokenHash(tokenHash))
}

func (s *UserStore) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE users SET password_reset_token_hash = $2,
			  password_reset_expires_at = $3, updated_at = NOW()
			  WHERE id = $1`

	_, err := s.db.Pool().Exec(ctx, query, userID, tokenHash, expiresAt)
	return err
}

func (s *UserStore) ClearResetToken(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET password_reset_token_hash = NULL,
			  password_reset_expires_at = NULL, updated_at = NOW()
			  WHERE id = $1`

	_, err := s.db.Pool().Exec(ctx, query, userID)
	return err
}

// UpdatePassword replaces the hash, stamps the change time and consumes any
// outstanding reset token in one statement, so the record never holds a
// half-applied password change. The stamp sits one second in the past to
// keep tokens issued in the same second from being read as stale.
func (s *UserStore) UpdatePassword(ctx context.Context, userID uuid.UUID, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2,
			  password_changed_at = NOW() - interval '1 second',
			  password_reset_token_hash = NULL,
			  password_reset_expires_at = NULL,
			  updated_at = NOW()
			  WHERE id = $1`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, newPasswordHash)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *UserStore) queryOne(ctx context.Context, builder sq.SelectBuilder) (*domain.User, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	user := &domain.User{}
	err = s.db.Pool().QueryRow(ctx, sqlStr, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Photo,
		&user.Role,
		&user.PasswordHash,
		&user.PasswordChangedAt,
		&user.PasswordResetTokenHash,
		&user.PasswordResetExpiresAt,
		&user.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
