package posts

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quillhub/quill/internal/api/auth"
	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

// Controller handles post and comment mutations. All routes behind it are
// guarded by auth.RequireAuth, so the current user is always present.
type Controller struct {
	service  *Service
	mediaDir string
}

func NewController(service *Service, mediaDir string) *Controller {
	return &Controller{service: service, mediaDir: mediaDir}
}

func (ctrl *Controller) Create(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, auth.LoginPath)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		ctrl.badRequest(c, err)
		return
	}

	image, err := ctrl.saveImage(c)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	in := PostInput{Text: form.Text, GroupSlug: form.Group, Image: image}
	if _, err := ctrl.service.CreatePost(c.Request.Context(), user, in); err != nil {
		ctrl.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

func (ctrl *Controller) Edit(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, auth.LoginPath)
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ctrl.fail(c, types.ErrNotFound)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		ctrl.badRequest(c, err)
		return
	}

	image, err := ctrl.saveImage(c)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	in := PostInput{Text: form.Text, GroupSlug: form.Group, Image: image}
	if _, err := ctrl.service.EditPost(c.Request.Context(), user, postID, in); err != nil {
		if errors.Is(err, types.ErrForbidden) {
			// Ownership mismatch silently lands back on the post.
			c.Redirect(http.StatusFound, detailPath(postID))
			return
		}
		ctrl.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, detailPath(postID))
}

func (ctrl *Controller) AddComment(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, auth.LoginPath)
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ctrl.fail(c, types.ErrNotFound)
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		ctrl.badRequest(c, err)
		return
	}

	if _, err := ctrl.service.AddComment(c.Request.Context(), user, postID, form.Text); err != nil {
		ctrl.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, detailPath(postID))
}

// saveImage stores an uploaded image, if any, under the media dir at a
// generated path. Returns nil when the form carried no file.
func (ctrl *Controller) saveImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	relative := filepath.Join("posts", name)
	if err := c.SaveUploadedFile(file, filepath.Join(ctrl.mediaDir, relative)); err != nil {
		return nil, fmt.Errorf("save uploaded image: %w", err)
	}
	return &relative, nil
}

func detailPath(postID int64) string {
	return fmt.Sprintf("/posts/%d", postID)
}

func (ctrl *Controller) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{
		Error:     "Bad Request",
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	})
}

func (ctrl *Controller) fail(c *gin.Context, err error) {
	var vErr *types.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
			Error:     "Validation Failed",
			Message:   vErr.Message,
			Field:     vErr.Field,
			Timestamp: time.Now().UTC(),
		})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:     "Not Found",
			Message:   "the requested resource does not exist",
			Timestamp: time.Now().UTC(),
		})
	default:
		utils.Zlog.Error("Mutation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
	}
}
