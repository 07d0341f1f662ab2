package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/swagatom/blog-api/internal/interface/http"
)

type RealtimeModule struct {
	Handler *handlers.RealtimeHandler
}

func NewRealtimeModule(h *handlers.RealtimeHandler) *RealtimeModule {
	return &RealtimeModule{Handler: h}
}

func (m *RealtimeModule) Register(rg *gin.RouterGroup) {
	// Anyone viewing a post may watch like counts move; no session needed.
	rg.GET("/realtime/comments", m.Handler.Comments)
}
