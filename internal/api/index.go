// Package api wires all feature routers onto the gin engine.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/internal/api/auth"
	"github.com/quillhub/quill/internal/api/feed"
	"github.com/quillhub/quill/internal/api/posts"
	"github.com/quillhub/quill/internal/config"
	"github.com/quillhub/quill/internal/storage"
	"github.com/quillhub/quill/internal/types"
)

func RegisterRoutes(router *gin.Engine, store storage.Store, cfg *config.Config) {
	router.Use(auth.CurrentUser(store, cfg.JwtSecret))

	root := router.Group("")
	auth.RegisterRoutes(root, store, cfg)
	feed.RegisterRoutes(root, store)
	posts.RegisterRoutes(root, store, cfg)

	router.Static("/media", cfg.MediaDir)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:     "Not Found",
			Message:   "the requested resource does not exist",
			Timestamp: time.Now().UTC(),
		})
	})
}
