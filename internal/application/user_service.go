package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/domain/entity"
	repo "github.com/swagatom/blog-api/internal/domain/repository"
	"github.com/swagatom/blog-api/pkg/helpers"
)

// UserService implements profile management and admin user listing.
type UserService struct {
	Repo      repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(r repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// UpdateUserInput carries the mutable profile fields. Empty fields are left
// untouched.
type UpdateUserInput struct {
	Username       string
	Email          string
	Password       string
	ProfilePicture string
}

// UpdateUser applies a profile update. Users may only update themselves;
// admin edits of other accounts go through the same rule deliberately, since
// the original product had no admin profile editing.
func (s *UserService) UpdateUser(ctx context.Context, caller *entity.User, targetID string, in UpdateUserInput) (*entity.User, error) {
	if caller.ID != targetID {
		return nil, ErrForbidden
	}
	u, err := s.Repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.Email != "" {
		u.Email = strings.ToLower(in.Email)
	}
	if in.ProfilePicture != "" {
		u.ProfilePicture = in.ProfilePicture
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, s.updateConflict(ctx, u)
		}
		return nil, err
	}
	return u, nil
}

// updateConflict resolves which unique column a profile update collided on,
// so the client hears about the right field.
func (s *UserService) updateConflict(ctx context.Context, u *entity.User) error {
	if other, err := s.Repo.GetByUsername(ctx, u.Username); err == nil && other.ID != u.ID {
		return ErrUsernameTaken
	}
	if other, err := s.Repo.GetByEmail(ctx, u.Email); err == nil && other.ID != u.ID {
		return ErrEmailTaken
	}
	// colliding row gone between the write and the lookup
	return ErrEmailTaken
}

// DeleteUser removes an account. Self-delete or admin moderation.
func (s *UserService) DeleteUser(ctx context.Context, caller *entity.User, targetID string) error {
	if !caller.CanModerate(targetID) {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GetUser fetches a single user.
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// ListUsers returns a page of users plus the totals the admin dashboard
// shows. Password hashes are stripped by the handler projection.
func (s *UserService) ListUsers(ctx context.Context, startIndex, limit int, sortAsc bool) ([]*entity.User, int64, int64, error) {
	users, err := s.Repo.List(ctx, startIndex, limit, sortAsc)
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
	return users, total, lastMonth, nil
}

// UploadAvatar streams an avatar image to GCS and stores its URL on the
// profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.ProfilePicture = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

func monthAgo() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month()-1, now.Day(), 0, 0, 0, 0, now.Location())
}
