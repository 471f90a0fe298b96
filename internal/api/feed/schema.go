package feed

import (
	"time"

	"github.com/quillhub/quill/internal/types"
)

// FeedPage is one window of a post listing plus its pagination metadata.
type FeedPage struct {
	Items      []types.Post `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	TotalPosts int          `json:"totalPosts"`
}

type GroupFeedResponse struct {
	Group *types.Group `json:"group"`
	FeedPage
}

type AuthorMeta struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	JoinedAt  time.Time `json:"joinedAt"`
	PostCount int       `json:"postCount"`
}

type ProfileResponse struct {
	Author AuthorMeta `json:"author"`
	FeedPage
}

type PostDetailResponse struct {
	Post     *types.Post     `json:"post"`
	Comments []types.Comment `json:"comments"`
}
