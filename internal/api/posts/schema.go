package posts

import (
	"strings"

	"github.com/quillhub/quill/internal/types"
)

// PostInput is the validated payload for creating or editing a post. Image is
// nil when no new file was uploaded, which leaves the stored path untouched
// on edit.
type PostInput struct {
	Text      string
	GroupSlug string
	Image     *string
}

type PostForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"`
}

type CommentForm struct {
	Text string `form:"text" json:"text"`
}

func ValidatePostInput(in *PostInput) error {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return types.NewValidationError("text", "cannot be empty")
	}
	in.GroupSlug = strings.TrimSpace(in.GroupSlug)
	return nil
}

func ValidateCommentInput(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", types.NewValidationError("text", "cannot be empty")
	}
	return text, nil
}
