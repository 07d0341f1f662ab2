package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/internal/domain/repository"
	"github.com/swagatom/blog-api/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (r *stubUserRepo) Update(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) Delete(context.Context, string) error       { return nil }
func (r *stubUserRepo) List(context.Context, int, int, bool) ([]*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Count(context.Context) (int64, error)                 { return 0, nil }
func (r *stubUserRepo) CountSince(context.Context, time.Time) (int64, error) { return 0, nil }

func newAuthRig(t *testing.T) (*gin.Engine, *helpers.JWTManager, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Username: "alicewrites", Role: entity.RoleUser},
		"user-2": {ID: "user-2", Username: "adminacct1", Role: entity.RoleAdmin},
	}}

	r := gin.New()
	auth := r.Group("/", Auth(repo, jwt))
	auth.GET("/me", func(c *gin.Context) {
		u := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	auth.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwt, repo
}

func doGet(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, jwt, _ := newAuthRig(t)

	t.Run("missing cookie", func(t *testing.T) {
		w := doGet(r, "/me", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "token not found")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doGet(r, "/me", "not-a-jwt")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := helpers.NewJWTManager("wrong-secret", time.Hour)
		token, _, err := other.GenerateToken("user-1", "user")
		require.NoError(t, err)

		w := doGet(r, "/me", token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := helpers.NewJWTManager("test-secret", -time.Minute)
		token, _, err := expired.GenerateToken("user-1", "user")
		require.NoError(t, err)

		w := doGet(r, "/me", token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token for deleted account", func(t *testing.T) {
		token, _, err := jwt.GenerateToken("user-gone", "user")
		require.NoError(t, err)

		w := doGet(r, "/me", token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "user not found")
	})

	t.Run("valid token loads the account", func(t *testing.T) {
		token, _, err := jwt.GenerateToken("user-1", "user")
		require.NoError(t, err)

		w := doGet(r, "/me", token)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "user-1")
	})
}

func TestRequireAdmin(t *testing.T) {
	r, jwt, _ := newAuthRig(t)

	t.Run("regular user is rejected", func(t *testing.T) {
		token, _, err := jwt.GenerateToken("user-1", "user")
		require.NoError(t, err)

		w := doGet(r, "/admin", token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, _, err := jwt.GenerateToken("user-2", "admin")
		require.NoError(t, err)

		w := doGet(r, "/admin", token)
		require.Equal(t, http.StatusOK, w.Code)
	})
}
