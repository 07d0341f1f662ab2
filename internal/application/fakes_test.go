package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/internal/domain/repository"
)

// memUserRepo is a mutex-protected in-memory repository.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	next  int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if ex.Username == u.Username || ex.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.next++
	u.ID = fmt.Sprintf("user-%d", r.next)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, ex := range r.users {
		if ex.ID != u.ID && (ex.Username == u.Username || ex.Email == u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(_ context.Context, offset, limit int, sortAsc bool) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if sortAsc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// memPostRepo is a mutex-protected in-memory repository.PostRepository.
type memPostRepo struct {
	mu    sync.Mutex
	next  int
	posts map[string]*entity.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]*entity.Post)}
}

func clonePost(p *entity.Post) *entity.Post {
	cp := *p
	return &cp
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.posts {
		if ex.Slug == p.Slug {
			return repository.ErrDuplicate
		}
	}
	r.next++
	p.ID = fmt.Sprintf("post-%d", r.next)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *memPostRepo) Update(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) List(_ context.Context, f repository.PostFilter) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Post
	for _, p := range r.posts {
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Slug != "" && p.Slug != f.Slug {
			continue
		}
		if f.PostID != "" && p.ID != f.PostID {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if f.OrderAsc {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memPostRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.posts)), nil
}

func (r *memPostRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.posts {
		if !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// memCommentRepo mirrors the SQL implementation's toggle contract: likers set
// and counter move together under one lock.
type memCommentRepo struct {
	mu       sync.Mutex
	next     int
	comments map[string]*entity.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: make(map[string]*entity.Comment)}
}

func cloneComment(c *entity.Comment) *entity.Comment {
	cp := *c
	cp.Likes = append([]string(nil), c.Likes...)
	return &cp
}

func (r *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	c.ID = fmt.Sprintf("comment-%d", r.next)
	c.Likes = []string{}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.comments[c.ID] = cloneComment(c)
	return nil
}

func (r *memCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneComment(c), nil
}

func (r *memCommentRepo) GetByPost(_ context.Context, postID string) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memCommentRepo) UpdateContent(_ context.Context, id, content string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	return cloneComment(c), nil
}

func (r *memCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *memCommentRepo) ToggleLike(_ context.Context, commentID, userID string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[commentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	idx := -1
	for i, id := range c.Likes {
		if id == userID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		c.Likes = append(c.Likes[:idx], c.Likes[idx+1:]...)
		c.NumberOfLikes--
	} else {
		c.Likes = append(c.Likes, userID)
		c.NumberOfLikes++
	}
	c.UpdatedAt = time.Now()
	return cloneComment(c), nil
}

func (r *memCommentRepo) List(_ context.Context, offset, limit int, sortAsc bool) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		out = append(out, cloneComment(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if sortAsc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memCommentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.comments)), nil
}

func (r *memCommentRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.comments {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// memEnqueuer records published email jobs.
type memEnqueuer struct {
	mu   sync.Mutex
	jobs []any
	fail bool
}

func (e *memEnqueuer) PublishJSON(_ context.Context, body any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return fmt.Errorf("queue unavailable")
	}
	e.jobs = append(e.jobs, body)
	return nil
}

func (e *memEnqueuer) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.jobs)
}
