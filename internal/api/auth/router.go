package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/internal/config"
	"github.com/quillhub/quill/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, store storage.Store, cfg *config.Config) {
	service := NewService(store, cfg.JwtSecret, cfg.SessionTTL)
	controller := NewController(service)

	router.GET("/auth/login", controller.LoginForm)
	router.POST("/auth/signup", controller.Signup)
	router.POST("/auth/login", controller.Login)
	router.POST("/auth/logout", controller.Logout)
}
