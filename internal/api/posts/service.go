package posts

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/quillhub/quill/internal/storage"
	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

// Service owns post and comment mutations: validation, group resolution, and
// the ownership check on edits.
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) resolveGroup(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.store.GroupBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.NewValidationError("group", "unknown group")
		}
		return nil, err
	}
	return &group.ID, nil
}

func (s *Service) CreatePost(ctx context.Context, author *types.User, in PostInput) (*types.Post, error) {
	if err := ValidatePostInput(&in); err != nil {
		return nil, err
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &types.Post{
		AuthorID: author.ID,
		GroupID:  groupID,
		Text:     in.Text,
	}
	if in.Image != nil {
		post.ImagePath = *in.Image
	}

	created, err := s.store.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	utils.Zlog.Info("Post created",
		zap.Int64("postId", created.ID),
		zap.String("author", author.Username),
		zap.String("group", created.GroupSlug))
	return created, nil
}

// EditPost overwrites text/group/image after revalidation. The author and
// creation timestamp never change. A non-author editor gets ErrForbidden,
// which the controller maps to a redirect, not an error page.
func (s *Service) EditPost(ctx context.Context, editor *types.User, postID int64, in PostInput) (*types.Post, error) {
	post, err := s.store.PostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editor.ID {
		return nil, types.ErrForbidden
	}

	if err := ValidatePostInput(&in); err != nil {
		return nil, err
	}
	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = groupID
	if in.Image != nil {
		post.ImagePath = *in.Image
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	utils.Zlog.Info("Post edited", zap.Int64("postId", post.ID), zap.String("editor", editor.Username))
	return s.store.PostByID(ctx, postID)
}

func (s *Service) AddComment(ctx context.Context, author *types.User, postID int64, text string) (*types.Comment, error) {
	if _, err := s.store.PostByID(ctx, postID); err != nil {
		return nil, err
	}

	text, err := ValidateCommentInput(text)
	if err != nil {
		return nil, err
	}

	comment, err := s.store.CreateComment(ctx, &types.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Text:     text,
	})
	if err != nil {
		return nil, err
	}

	utils.Zlog.Info("Comment added",
		zap.Int64("postId", postID),
		zap.Int64("commentId", comment.ID),
		zap.String("author", author.Username))
	return comment, nil
}
