package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (auth, user, post, comment, realtime) that hangs
// its own routes off the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
