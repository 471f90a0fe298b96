package posts

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/internal/api/auth"
	"github.com/quillhub/quill/internal/config"
	"github.com/quillhub/quill/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, store storage.Store, cfg *config.Config) {
	service := NewService(store)
	controller := NewController(service, cfg.MediaDir)

	guarded := router.Group("", auth.RequireAuth())
	guarded.POST("/posts", controller.Create)
	guarded.POST("/posts/:id/edit", controller.Edit)
	guarded.POST("/posts/:id/comments", controller.AddComment)
}
