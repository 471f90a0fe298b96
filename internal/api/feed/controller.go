package feed

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

// Controller handles the read-only feed endpoints.
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Index(c *gin.Context) {
	page := utils.ParsePage(c.Query("page"))

	feedPage, err := ctrl.service.Global(c.Request.Context(), page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, feedPage)
}

func (ctrl *Controller) GroupFeed(c *gin.Context) {
	page := utils.ParsePage(c.Query("page"))

	feedPage, group, err := ctrl.service.ByGroup(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GroupFeedResponse{Group: group, FeedPage: *feedPage})
}

func (ctrl *Controller) Profile(c *gin.Context) {
	page := utils.ParsePage(c.Query("page"))

	feedPage, author, err := ctrl.service.ByAuthor(c.Request.Context(), c.Param("username"), page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{
		Author: AuthorMeta{
			ID:        author.ID,
			Username:  author.Username,
			JoinedAt:  author.JoinedAt,
			PostCount: feedPage.TotalPosts,
		},
		FeedPage: *feedPage,
	})
}

func (ctrl *Controller) PostDetail(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ctrl.fail(c, types.ErrNotFound)
		return
	}

	post, comments, err := ctrl.service.PostDetail(c.Request.Context(), postID)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, PostDetailResponse{Post: post, Comments: comments})
}

func (ctrl *Controller) fail(c *gin.Context, err error) {
	if errors.Is(err, types.ErrNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:     "Not Found",
			Message:   "the requested resource does not exist",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	utils.Zlog.Error("Feed request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:     "Internal Server Error",
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	})
}
