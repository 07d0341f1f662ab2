package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/domain/entity"
	repo "github.com/swagatom/blog-api/internal/domain/repository"
	"github.com/swagatom/blog-api/internal/realtime"
)

// CommentService implements comment CRUD, the like toggle, and the
// write-then-publish fan-out of like-count changes.
type CommentService struct {
	Repo      repo.CommentRepository
	Broadcast *realtime.Broadcaster
	Logger    *logrus.Logger
}

func NewCommentService(r repo.CommentRepository, b *realtime.Broadcaster, logger *logrus.Logger) *CommentService {
	return &CommentService{Repo: r, Broadcast: b, Logger: logger}
}

// CreateComment stores a comment authored by the verified caller. A body
// userId that contradicts the session identity is rejected outright;
// identity is never taken from the request body.
func (s *CommentService) CreateComment(ctx context.Context, caller *entity.User, postID, content, bodyUserID string) (*entity.Comment, error) {
	if bodyUserID != "" && bodyUserID != caller.ID {
		return nil, ErrForbidden
	}
	c := &entity.Comment{
		PostID:  postID,
		UserID:  caller.ID,
		Content: content,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetPostComments lists a post's comments, newest first.
func (s *CommentService) GetPostComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	return s.Repo.GetByPost(ctx, postID)
}

// ToggleLike flips the caller's like on a comment. The repository persists
// the likers-set mutation and the counter change in one atomic write; the
// updated count is broadcast only after that write has committed. Broadcast
// delivery is best-effort, so a publish failure is logged, not returned —
// viewers reconcile through the REST read path.
func (s *CommentService) ToggleLike(ctx context.Context, commentID, userID string) (*entity.Comment, error) {
	c, err := s.Repo.ToggleLike(ctx, commentID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.Broadcast != nil {
		ev := realtime.LikeEvent{CommentID: c.ID, NumberOfLikes: c.NumberOfLikes}
		if perr := s.Broadcast.Publish(ctx, ev); perr != nil && s.Logger != nil {
			s.Logger.WithError(perr).WithField("comment_id", c.ID).Warn("like event publish failed")
		}
	}
	return c, nil
}

// EditComment replaces a comment's content. Author or admin only; nothing
// else about the comment changes.
func (s *CommentService) EditComment(ctx context.Context, caller *entity.User, commentID, content string) (*entity.Comment, error) {
	c, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !caller.CanModerate(c.UserID) {
		return nil, ErrForbidden
	}
	updated, err := s.Repo.UpdateContent(ctx, commentID, content)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteComment removes a comment permanently. Author or admin only.
func (s *CommentService) DeleteComment(ctx context.Context, caller *entity.User, commentID string) error {
	c, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !caller.CanModerate(c.UserID) {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListComments returns a page of all comments plus dashboard totals.
// The admin gate sits in the route middleware.
func (s *CommentService) ListComments(ctx context.Context, startIndex, limit int, sortAsc bool) ([]*entity.Comment, int64, int64, error) {
	comments, err := s.Repo.List(ctx, startIndex, limit, sortAsc)
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	lastMonth, err := s.Repo.CountSince(ctx, monthAgo())
	if err != nil {
		return nil, 0, 0, err
	}
	return comments, total, lastMonth, nil
}

func (s *CommentService) getComment(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
