package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/internal/domain/repository"
)

const postColumns = `id, user_id, title, content, category, slug, image, created_at, updated_at`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Category, &p.Slug, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, title, content, category, slug, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Title, p.Content, p.Category, p.Slug, p.Image)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if uniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, content = $2, category = $3, slug = $4, image = $5, updated_at = $6
		WHERE id = $7
	`, p.Title, p.Content, p.Category, p.Slug, p.Image, p.UpdatedAt, p.ID)
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

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List filters are ANDed; the zero filter returns a newest-first page of
// everything.
func (r *PostRepository) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Slug != "" {
		add("slug = $%d", f.Slug)
	}
	if f.PostID != "" {
		add("id = $%d", f.PostID)
	}
	if f.SearchTerm != "" {
		args = append(args, "%"+f.SearchTerm+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}

	q := `SELECT ` + postColumns + ` FROM posts`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	order := "DESC"
	if f.OrderAsc {
		order = "ASC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 9
	}
	args = append(args, f.Offset, limit)
	q += fmt.Sprintf(` ORDER BY updated_at %s OFFSET $%d LIMIT $%d`, order, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n)
	return n, err
}

func (r *PostRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

var _ repository.PostRepository = (*PostRepository)(nil)
