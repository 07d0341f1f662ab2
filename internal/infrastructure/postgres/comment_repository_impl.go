package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanComment reads a comment row whose likers were aggregated into an array
// column by the query.
func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	var likes []string
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &likes, &c.NumberOfLikes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c.Likes = likes
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return c, nil
}

// commentQuery aggregates comment_likes into a text array so one row carries
// both the likers set and the counter.
const commentQuery = `
	SELECT c.id, c.post_id, c.user_id, c.content,
	       coalesce(array_agg(cl.user_id::text ORDER BY cl.created_at) FILTER (WHERE cl.user_id IS NOT NULL), '{}'),
	       c.like_count, c.created_at, c.updated_at
	FROM comments c
	LEFT JOIN comment_likes cl ON cl.comment_id = c.id
`

func getComment(ctx context.Context, q rowQuerier, id string) (*entity.Comment, error) {
	return scanComment(q.QueryRow(ctx, commentQuery+`
		WHERE c.id = $1
		GROUP BY c.id
	`, id))
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, like_count, created_at, updated_at
	`, c.PostID, c.UserID, c.Content)

	if err := row.Scan(&c.ID, &c.NumberOfLikes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	return getComment(ctx, r.pool, id)
}

func (r *CommentRepository) GetByPost(ctx context.Context, postID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, commentQuery+`
		WHERE c.post_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE comments SET content = $1, updated_at = now() WHERE id = $2
	`, content, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return getComment(ctx, r.pool, id)
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleLike flips userID's like in a single transaction. The comment row is
// locked first, so concurrent toggles on the same comment serialize and the
// counter always moves in step with the membership row.
func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID string) (*entity.Comment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked string
	err = tx.QueryRow(ctx, `SELECT id FROM comments WHERE id = $1 FOR UPDATE`, commentID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	res, err := tx.Exec(ctx, `
		DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2
	`, commentID, userID)
	if err != nil {
		return nil, err
	}

	if res.RowsAffected() > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE comments SET like_count = like_count - 1, updated_at = now() WHERE id = $1
		`, commentID)
	} else {
		if _, err = tx.Exec(ctx, `
			INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)
		`, commentID, userID); err == nil {
			_, err = tx.Exec(ctx, `
				UPDATE comments SET like_count = like_count + 1, updated_at = now() WHERE id = $1
			`, commentID)
		}
	}
	if err != nil {
		return nil, err
	}

	c, err := getComment(ctx, tx, commentID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) List(ctx context.Context, offset, limit int, sortAsc bool) ([]*entity.Comment, error) {
	order := "DESC"
	if sortAsc {
		order = "ASC"
	}
	rows, err := r.pool.Query(ctx, commentQuery+`
		GROUP BY c.id
		ORDER BY c.created_at `+order+`
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

func (r *CommentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments`).Scan(&n)
	return n, err
}

func (r *CommentRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

func collectComments(rows pgx.Rows) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
