package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/swagatom/blog-api/internal/domain/repository"
	handlers "github.com/swagatom/blog-api/internal/interface/http"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/helpers"
)

type PostModule struct {
	Handler *handlers.PostHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, users repository.UserRepository, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, Users: users, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	// Public reads
	rg.GET("/post/getposts", m.Handler.List)
	rg.GET("/post/search", m.Handler.Search)

	auth := rg.Group("/post")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.POST("/create", middleware.RequireAdmin(), m.Handler.Create)
		auth.PUT("/updatepost/:postId", m.Handler.Update)
		auth.DELETE("/deletepost/:postId", m.Handler.Delete)
	}
}
