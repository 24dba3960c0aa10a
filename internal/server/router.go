package server

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter は gin のルーターを構成するのだ。
func SetupRouter(h *MemeHandler, mode string) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())

	r.GET("/healthz", Health)

	api := r.Group("/api")
	{
		api.POST("/memes", h.CreateMeme)
		api.GET("/catalog", h.GetCatalog)
	}
	return r
}
