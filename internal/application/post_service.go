package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/domain/entity"
	repo "github.com/swagatom/blog-api/internal/domain/repository"
)

// PostService implements post CRUD and search. Posts are indexed to
// Elasticsearch best-effort; Postgres remains the source of truth.
type PostService struct {
	Repo    repo.PostRepository
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewPostService(r repo.PostRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *PostService {
	return &PostService{Repo: r, ES: es, ESIndex: esIndex, Logger: logger}
}

// CreatePostInput carries the authorable fields.
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Image    string
}

// CreatePost publishes a new post. Admin only; the slug derives from the
// title.
func (s *PostService) CreatePost(ctx context.Context, caller *entity.User, in CreatePostInput) (*entity.Post, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	p := &entity.Post{
		UserID:   caller.ID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Slug:     entity.Slugify(in.Title),
		Image:    in.Image,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexPost(ctx, p)
	return p, nil
}

// GetPosts returns a filtered page plus dashboard totals.
func (s *PostService) GetPosts(ctx context.Context, f repo.PostFilter) ([]*entity.Post, int64, int64, error) {
	posts, err := s.Repo.List(ctx, f)
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
	return posts, total, lastMonth, nil
}

// UpdatePostInput carries the mutable post fields; empty fields are
// untouched.
type UpdatePostInput struct {
	Title    string
	Content  string
	Category string
	Image    string
}

// UpdatePost edits a post. Author or admin.
func (s *PostService) UpdatePost(ctx context.Context, caller *entity.User, postID string, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !caller.CanModerate(p.UserID) {
		return nil, ErrForbidden
	}
	if in.Title != "" {
		p.Title = in.Title
		p.Slug = entity.Slugify(in.Title)
	}
	if in.Content != "" {
		p.Content = in.Content
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Image != "" {
		p.Image = in.Image
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.indexPost(ctx, p)
	return p, nil
}

// DeletePost removes a post. Author or admin.
func (s *PostService) DeletePost(ctx context.Context, caller *entity.User, postID string) error {
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if !caller.CanModerate(p.UserID) {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteIndexed(ctx, postID)
	return nil
}

// SearchPosts runs a multi_match query over title and content.
func (s *PostService) SearchPosts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "content"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *PostService) getPost(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"content":    p.Content,
		"category":   p.Category,
		"slug":       p.Slug,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}

func (s *PostService) deleteIndexed(ctx context.Context, postID string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: postID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", postID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
