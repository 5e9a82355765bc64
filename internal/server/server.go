// Package server exposes the compliance checker as a small HTTP/JSON API.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/history"
)

// New builds the gin engine with all routes attached. The history store is
// optional; when nil, runs are not recorded.
func New(checker *compliance.Checker, store *history.Store) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, checker, store)
	return g
}

func attachRoutes(g *gin.Engine, checker *compliance.Checker, store *history.Store) {
	g.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	h := NewHandlers(checker, store)

	v1 := g.Group("/v1")
	{
		v1.GET("/check", h.Check)
		v1.GET("/projects/:id/compliance", h.ProjectCompliance)
		v1.GET("/profile/:username/readme", h.ProfileReadme)
		v1.GET("/history", h.History)
	}
}
