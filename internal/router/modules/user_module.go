package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/swagatom/blog-api/internal/domain/repository"
	handlers "github.com/swagatom/blog-api/internal/interface/http"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/helpers"
)

type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/user")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.GET("/getusers", middleware.RequireAdmin(), m.Handler.List)
		auth.PUT("/avatar", m.Handler.UploadAvatar)
		auth.PUT("/update/:userId", m.Handler.Update)
		auth.DELETE("/delete/:userId", m.Handler.Delete)
		auth.GET("/:userId", m.Handler.Get)
	}
}
