package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

// Controller handles registration and login.
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if _, err := ctrl.service.Signup(c.Request.Context(), req); err != nil {
		var vErr *types.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
				Error:     "Validation Failed",
				Message:   vErr.Message,
				Field:     vErr.Field,
				Timestamp: time.Now().UTC(),
			})
			return
		}
		utils.Zlog.Error("Signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, LoginPath)
}

// LoginForm is the redirect target for anonymous callers. Rendering is
// delegated to the client; the response just echoes where login will resume.
func (ctrl *Controller) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"action": LoginPath,
		"next":   safeNext(c.Query("next")),
	})
}

func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	token, user, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{
				Error:     "Unauthorized",
				Message:   err.Error(),
				Timestamp: time.Now().UTC(),
			})
			return
		}
		utils.Zlog.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	maxAge := int(ctrl.service.SessionTTL() / time.Second)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
	utils.Zlog.Info("User logged in", zap.String("username", user.Username))

	c.Redirect(http.StatusSeeOther, safeNext(c.Query("next")))
}

func (ctrl *Controller) Logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// safeNext keeps the continuation on-site: only relative paths are honored.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
