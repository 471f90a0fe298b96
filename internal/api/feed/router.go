package feed

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, store storage.Store) {
	service := NewService(store)
	controller := NewController(service)

	router.GET("/", controller.Index)
	router.GET("/group/:slug", controller.GroupFeed)
	router.GET("/profile/:username", controller.Profile)
	router.GET("/posts/:id", controller.PostDetail)
}
