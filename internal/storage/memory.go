package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quillhub/quill/internal/types"
)

// MemoryStore is a Store backed by in-process maps. It mirrors the relational
// semantics of the Postgres client (uniqueness, cascade on author delete,
// SET NULL on group delete) and backs the package tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[int64]*types.User
	groups   map[int64]*types.Group
	posts    map[int64]*types.Post
	comments map[int64]*types.Comment
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]*types.User),
		groups:   make(map[int64]*types.Group),
		posts:    make(map[int64]*types.Post),
		comments: make(map[int64]*types.Comment),
	}
}

func (m *MemoryStore) nextSeq() int64 {
	m.nextID++
	return m.nextID
}

func (m *MemoryStore) CreateUser(ctx context.Context, username, passwordHash string) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, types.ErrConflict
		}
	}
	user := &types.User{
		ID:           m.nextSeq(),
		Username:     username,
		PasswordHash: passwordHash,
		JoinedAt:     time.Now().UTC(),
	}
	m.users[user.ID] = user
	out := *user
	return &out, nil
}

func (m *MemoryStore) UserByID(ctx context.Context, id int64) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (m *MemoryStore) UserByUsername(ctx context.Context, username string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *MemoryStore) CreateGroup(ctx context.Context, slug, title, description string) (*types.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.groups {
		if g.Slug == slug {
			return nil, types.ErrConflict
		}
	}
	group := &types.Group{
		ID:          m.nextSeq(),
		Slug:        slug,
		Title:       title,
		Description: description,
	}
	m.groups[group.ID] = group
	out := *group
	return &out, nil
}

func (m *MemoryStore) GroupByID(ctx context.Context, id int64) (*types.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.groups[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	out := *group
	return &out, nil
}

func (m *MemoryStore) GroupBySlug(ctx context.Context, slug string) (*types.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, g := range m.groups {
		if g.Slug == slug {
			out := *g
			return &out, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *MemoryStore) DeleteGroup(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[id]; !ok {
		return types.ErrNotFound
	}
	delete(m.groups, id)
	// Posts keep living when their group goes away; only the reference clears.
	for _, p := range m.posts {
		if p.GroupID != nil && *p.GroupID == id {
			p.GroupID = nil
			p.GroupSlug = ""
		}
	}
	return nil
}

func (m *MemoryStore) CreatePost(ctx context.Context, post *types.Post) (*types.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	author, ok := m.users[post.AuthorID]
	if !ok {
		return nil, types.ErrNotFound
	}
	stored := *post
	stored.ID = m.nextSeq()
	stored.CreatedAt = time.Now().UTC()
	stored.Author = author.Username
	if stored.GroupID != nil {
		group, ok := m.groups[*stored.GroupID]
		if !ok {
			return nil, types.ErrNotFound
		}
		stored.GroupSlug = group.Slug
	} else {
		stored.GroupSlug = ""
	}
	m.posts[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MemoryStore) UpdatePost(ctx context.Context, post *types.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[post.ID]
	if !ok {
		return types.ErrNotFound
	}
	// Author and creation timestamp are immutable.
	existing.Text = post.Text
	existing.ImagePath = post.ImagePath
	existing.GroupID = post.GroupID
	existing.GroupSlug = ""
	if post.GroupID != nil {
		group, ok := m.groups[*post.GroupID]
		if !ok {
			return types.ErrNotFound
		}
		existing.GroupSlug = group.Slug
	}
	return nil
}

func (m *MemoryStore) PostByID(ctx context.Context, id int64) (*types.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	out := *post
	return &out, nil
}

func (m *MemoryStore) scoped(scope types.FeedScope) []types.Post {
	var matched []types.Post
	for _, p := range m.posts {
		if scope.GroupID != nil && (p.GroupID == nil || *p.GroupID != *scope.GroupID) {
			continue
		}
		if scope.AuthorID != nil && p.AuthorID != *scope.AuthorID {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched
}

func (m *MemoryStore) CountPosts(ctx context.Context, scope types.FeedScope) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.scoped(scope)), nil
}

func (m *MemoryStore) ListPosts(ctx context.Context, scope types.FeedScope, limit, offset int) ([]types.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := m.scoped(scope)
	if offset >= len(matched) {
		return []types.Post{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *MemoryStore) CreateComment(ctx context.Context, comment *types.Comment) (*types.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[comment.PostID]; !ok {
		return nil, types.ErrNotFound
	}
	author, ok := m.users[comment.AuthorID]
	if !ok {
		return nil, types.ErrNotFound
	}
	stored := *comment
	stored.ID = m.nextSeq()
	stored.CreatedAt = time.Now().UTC()
	stored.Author = author.Username
	m.comments[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MemoryStore) CommentsByPost(ctx context.Context, postID int64) ([]types.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := []types.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}
