// Package storage defines the persistence contract shared by the Postgres
// client and the in-memory store used in tests.
package storage

import (
	"context"

	"github.com/quillhub/quill/internal/types"
)

type Store interface {
	// Users
	CreateUser(ctx context.Context, username, passwordHash string) (*types.User, error)
	UserByID(ctx context.Context, id int64) (*types.User, error)
	UserByUsername(ctx context.Context, username string) (*types.User, error)

	// Groups
	CreateGroup(ctx context.Context, slug, title, description string) (*types.Group, error)
	GroupByID(ctx context.Context, id int64) (*types.Group, error)
	GroupBySlug(ctx context.Context, slug string) (*types.Group, error)
	// DeleteGroup removes a group and clears (never deletes) the group
	// reference on its posts.
	DeleteGroup(ctx context.Context, id int64) error

	// Posts. Listings are ordered created_at descending, id descending.
	CreatePost(ctx context.Context, post *types.Post) (*types.Post, error)
	UpdatePost(ctx context.Context, post *types.Post) error
	PostByID(ctx context.Context, id int64) (*types.Post, error)
	CountPosts(ctx context.Context, scope types.FeedScope) (int, error)
	ListPosts(ctx context.Context, scope types.FeedScope, limit, offset int) ([]types.Post, error)

	// Comments. Listings are ordered created_at ascending, id ascending.
	CreateComment(ctx context.Context, comment *types.Comment) (*types.Comment, error)
	CommentsByPost(ctx context.Context, postID int64) ([]types.Comment, error)
}
