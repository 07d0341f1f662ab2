package repository

import (
	"context"
	"time"

	"github.com/swagatom/blog-api/internal/domain/entity"
)

// CommentRepository defines the interface for comment persistence.
//
// ToggleLike flips userID's membership in the comment's likers set and moves
// the denormalized count by exactly one in the same atomic write. Concurrent
// toggles on one comment serialize inside the implementation; callers get
// back the fully updated comment.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetByPost(ctx context.Context, postID string) ([]*entity.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, commentID, userID string) (*entity.Comment, error)
	List(ctx context.Context, offset, limit int, sortAsc bool) ([]*entity.Comment, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
