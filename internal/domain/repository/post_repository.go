package repository

import (
	"context"
	"time"

	"github.com/swagatom/blog-api/internal/domain/entity"
)

// PostFilter narrows List results. Zero values mean "no constraint".
type PostFilter struct {
	UserID     string
	Category   string
	Slug       string
	PostID     string
	SearchTerm string
	Offset     int
	Limit      int
	OrderAsc   bool
}

// PostRepository defines the interface for post persistence.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PostFilter) ([]*entity.Post, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
