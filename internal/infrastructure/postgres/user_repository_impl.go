package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/internal/domain/repository"
)

const userColumns = `id, username, email, password_hash, profile_picture, role,
	verify_otp, verify_otp_expires_at, reset_otp, reset_otp_expires_at,
	is_verified, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var verifyExp, resetExp *time.Time
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.ProfilePicture, &u.Role,
		&u.VerifyOTP, &verifyExp, &u.ResetOTP, &resetExp,
		&u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if verifyExp != nil {
		u.VerifyOTPExp = *verifyExp
	}
	if resetExp != nil {
		u.ResetOTPExp = *resetExp
	}
	return u, nil
}

// uniqueViolation maps Postgres 23505 onto the repository sentinel.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, profile_picture, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.ProfilePicture, u.Role)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if uniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	var verifyExp, resetExp *time.Time
	if !u.VerifyOTPExp.IsZero() {
		verifyExp = &u.VerifyOTPExp
	}
	if !u.ResetOTPExp.IsZero() {
		resetExp = &u.ResetOTPExp
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, profile_picture = $4,
		    role = $5, verify_otp = $6, verify_otp_expires_at = $7,
		    reset_otp = $8, reset_otp_expires_at = $9, is_verified = $10,
		    updated_at = $11
		WHERE id = $12
	`, u.Username, u.Email, u.Password, u.ProfilePicture,
		u.Role, u.VerifyOTP, verifyExp,
		u.ResetOTP, resetExp, u.IsVerified,
		u.UpdatedAt, u.ID)
	if err != nil {
		if uniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int, sortAsc bool) ([]*entity.User, error) {
	order := "DESC"
	if sortAsc {
		order = "ASC"
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at `+order+`
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

var _ repository.UserRepository = (*UserRepository)(nil)
