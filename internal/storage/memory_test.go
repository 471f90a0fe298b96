package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhub/quill/internal/types"
)

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, "leo", "otherhash")
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestListPostsOrdersNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	author, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 3; i++ {
		post, err := store.CreatePost(ctx, &types.Post{AuthorID: author.ID, Text: "post"})
		require.NoError(t, err)
		ids = append(ids, post.ID)
	}

	posts, err := store.ListPosts(ctx, types.FeedScope{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, ids[2], posts[0].ID)
	assert.Equal(t, ids[1], posts[1].ID)
	assert.Equal(t, ids[0], posts[2].ID)
}

func TestListPostsScopesByGroupAndAuthor(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	leo, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)
	mia, err := store.CreateUser(ctx, "mia", "hash")
	require.NoError(t, err)
	group, err := store.CreateGroup(ctx, "cats", "Cats", "feline content")
	require.NoError(t, err)

	_, err = store.CreatePost(ctx, &types.Post{AuthorID: leo.ID, GroupID: &group.ID, Text: "grouped"})
	require.NoError(t, err)
	_, err = store.CreatePost(ctx, &types.Post{AuthorID: mia.ID, Text: "ungrouped"})
	require.NoError(t, err)

	byGroup, err := store.ListPosts(ctx, types.FeedScope{GroupID: &group.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, "grouped", byGroup[0].Text)
	assert.Equal(t, "cats", byGroup[0].GroupSlug)

	byAuthor, err := store.ListPosts(ctx, types.FeedScope{AuthorID: &mia.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "ungrouped", byAuthor[0].Text)
	assert.Equal(t, "mia", byAuthor[0].Author)
}

func TestDeleteGroupClearsPostReference(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	author, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)
	group, err := store.CreateGroup(ctx, "cats", "Cats", "feline content")
	require.NoError(t, err)
	post, err := store.CreatePost(ctx, &types.Post{AuthorID: author.ID, GroupID: &group.ID, Text: "survives"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteGroup(ctx, group.ID))

	got, err := store.PostByID(ctx, post.ID)
	require.NoError(t, err, "post must outlive its group")
	assert.Nil(t, got.GroupID)
	assert.Empty(t, got.GroupSlug)

	_, err = store.GroupBySlug(ctx, "cats")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdatePostKeepsAuthorAndTimestamp(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	author, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)
	post, err := store.CreatePost(ctx, &types.Post{AuthorID: author.ID, Text: "before"})
	require.NoError(t, err)

	updated := *post
	updated.Text = "after"
	require.NoError(t, store.UpdatePost(ctx, &updated))

	got, err := store.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Text)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.True(t, got.CreatedAt.Equal(post.CreatedAt))
}

func TestCommentsByPostChronological(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	author, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)
	post, err := store.CreatePost(ctx, &types.Post{AuthorID: author.ID, Text: "post"})
	require.NoError(t, err)

	first, err := store.CreateComment(ctx, &types.Comment{PostID: post.ID, AuthorID: author.ID, Text: "first"})
	require.NoError(t, err)
	second, err := store.CreateComment(ctx, &types.Comment{PostID: post.ID, AuthorID: author.ID, Text: "second"})
	require.NoError(t, err)

	comments, err := store.CommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	author, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)

	_, err = store.CreateComment(ctx, &types.Comment{PostID: 404, AuthorID: author.ID, Text: "lost"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}
