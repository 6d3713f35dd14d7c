package repository

import (
	"context"
	"errors"

	authdomain "tourbook/internal/auth/domain"
	"tourbook/internal/database"
	"tourbook/internal/users/domain"

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

func onlyActive(b sq.SelectBuilder) sq.SelectBuilder {
	return b.Where(sq.Eq{"active": true})
}

func (s *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*authdomain.User, error) {
	return s.queryOne(ctx, onlyActive(selectUsers().Where(sq.Eq{"id": userID})))
}

func (s *UserStore) GetUserByEmailAnyStatus(ctx context.Context, email string) (*authdomain.User, error) {
	return s.queryOne(ctx, selectUsers().Where(sq.Eq{"email": email}))
}

func (s *UserStore) ListUsers(ctx context.Context, limit, offset uint64) ([]*authdomain.User, error) {
	builder := onlyActive(selectUsers()).
		OrderBy("name ASC").
		Limit(limit).
		Offset(offset)

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool().Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*authdomain.User
	for rows.Next() {
		user := &authdomain.User{}
		if err := scanUser(rows, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (s *UserStore) UpdateUser(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*authdomain.User, error) {
	builder := sq.Update("users").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID, "active": true}).
		Suffix("RETURNING " + columnList()).
		PlaceholderFormat(sq.Dollar)

	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		builder = builder.Set("email", authdomain.NormalizeEmail(*patch.Email))
	}
	if patch.Photo != nil {
		builder = builder.Set("photo", *patch.Photo)
	}
	if patch.Role != nil {
		builder = builder.Set("role", sq.Expr("?::user_role", string(*patch.Role)))
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{}
	err = scanUser(s.db.Pool().QueryRow(ctx, sqlStr, args...), user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

func (s *UserStore) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	query := `UPDATE users SET active = $2, updated_at = NOW() WHERE id = $1`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, active)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *UserStore) queryOne(ctx context.Context, builder sq.SelectBuilder) (*authdomain.User, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{}
	err = scanUser(s.db.Pool().QueryRow(ctx, sqlStr, args...), user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func columnList() string {
	list := userColumns[0]
	for _, c := range userColumns[1:] {
		list += ", " + c
	}
	return list
}

func scanUser(row pgx.Row, user *authdomain.User) error {
	return row.Scan(
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
}
