package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/swagatom/blog-api/internal/domain/repository"
	handlers "github.com/swagatom/blog-api/internal/interface/http"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/helpers"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewCommentModule(h *handlers.CommentHandler, users repository.UserRepository, jwt *helpers.JWTManager) *CommentModule {
	return &CommentModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	// Public read
	rg.GET("/comment/getPostComments/:postId", m.Handler.GetPostComments)

	auth := rg.Group("/comment")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.POST("/create", m.Handler.Create)
		auth.PUT("/likeComment/:commentId", m.Handler.LikeComment)
		auth.PUT("/editComment/:commentId", m.Handler.Edit)
		auth.DELETE("/deleteComment/:commentId", m.Handler.Delete)
		auth.GET("/getcomments", middleware.RequireAdmin(), m.Handler.List)
	}
}
