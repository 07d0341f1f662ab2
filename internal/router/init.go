package router

import (
	"github.com/swagatom/blog-api/internal/application"
	"github.com/swagatom/blog-api/internal/container"
	pginfra "github.com/swagatom/blog-api/internal/infrastructure/postgres"
	handlers "github.com/swagatom/blog-api/internal/interface/http"
	"github.com/swagatom/blog-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	var enq application.EmailEnqueuer
	if pub := container.GetRabbitPub(); pub != nil {
		enq = pub
	}
	authSvc := application.NewAuthService(userRepo, enq, logger, cfg.AppName, cfg.MailSendEnabled)
	userSvc := application.NewUserService(userRepo, container.GetGCS(), cfg.GCSBucket, logger)
	postSvc := application.NewPostService(postRepo, container.GetES(), cfg.ESPostsIndex, logger)
	commentSvc := application.NewCommentService(commentRepo, container.GetBroadcaster(), logger)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetJWT(), container.GetCookie(), logger)
	userHandler := handlers.NewUserHandler(userSvc, logger)
	postHandler := handlers.NewPostHandler(postSvc, logger)
	commentHandler := handlers.NewCommentHandler(commentSvc, logger)
	realtimeHandler := handlers.NewRealtimeHandler(container.GetBroadcaster(), logger)

	r.Add(modules.NewAuthModule(authHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewPostModule(postHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewCommentModule(commentHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewRealtimeModule(realtimeHandler))
}
