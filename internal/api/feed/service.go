package feed

import (
	"context"

	"github.com/quillhub/quill/internal/storage"
	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

// Service composes paginated, scope-filtered post feeds.
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// list resolves one page of the scoped feed. Posts come back newest-first;
// the requested page is clamped into the valid range, so asking past the end
// lands on the last page and an empty scope yields page 1 of 1.
func (s *Service) list(ctx context.Context, scope types.FeedScope, page int) (*FeedPage, error) {
	total, err := s.store.CountPosts(ctx, scope)
	if err != nil {
		return nil, err
	}

	window := utils.Paginate(total, page)
	items, err := s.store.ListPosts(ctx, scope, window.Limit, window.Offset)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Items:      items,
		Page:       window.Number,
		TotalPages: window.TotalPages,
		TotalPosts: total,
	}, nil
}

func (s *Service) Global(ctx context.Context, page int) (*FeedPage, error) {
	return s.list(ctx, types.FeedScope{}, page)
}

// ByGroup returns the group's feed plus the group itself. An unknown slug is
// ErrNotFound, never an empty feed.
func (s *Service) ByGroup(ctx context.Context, slug string, page int) (*FeedPage, *types.Group, error) {
	group, err := s.store.GroupBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	feedPage, err := s.list(ctx, types.FeedScope{GroupID: &group.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return feedPage, group, nil
}

// ByAuthor returns the author's feed plus the author. An unknown username is
// ErrNotFound, never an empty feed.
func (s *Service) ByAuthor(ctx context.Context, username string, page int) (*FeedPage, *types.User, error) {
	author, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	feedPage, err := s.list(ctx, types.FeedScope{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return feedPage, author, nil
}

// PostDetail returns the post and its comments in chronological order.
func (s *Service) PostDetail(ctx context.Context, postID int64) (*types.Post, []types.Comment, error) {
	post, err := s.store.PostByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.store.CommentsByPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}
