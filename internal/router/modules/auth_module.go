package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swagatom/blog-api/internal/container"
	"github.com/swagatom/blog-api/internal/domain/repository"
	handlers "github.com/swagatom/blog-api/internal/interface/http"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/send-rest-otp", resetInitLimiter, m.Handler.SendResetOTP)

	// Protected with user-based rate limits on the OTP senders
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	otpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUserID(), nil)
	{
		auth.GET("/auth/is-auth", m.Handler.IsAuth)
		auth.POST("/auth/send-verify-otp", otpLimiter, m.Handler.SendVerifyOTP)
		auth.POST("/auth/verify-account", m.Handler.VerifyAccount)
		auth.POST("/auth/reset-password", m.Handler.ResetPassword)
	}
}
