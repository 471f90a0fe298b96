package posts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhub/quill/internal/storage"
	"github.com/quillhub/quill/internal/types"
)

func newFixture(t *testing.T) (*Service, *storage.MemoryStore, *types.User) {
	t.Helper()
	store := storage.NewMemoryStore()
	author, err := store.CreateUser(context.Background(), "leo", "hash")
	require.NoError(t, err)
	return NewService(store), store, author
}

func globalCount(t *testing.T, store *storage.MemoryStore) int {
	t.Helper()
	count, err := store.CountPosts(context.Background(), types.FeedScope{})
	require.NoError(t, err)
	return count
}

func TestCreatePostPersistsExactInput(t *testing.T) {
	service, store, author := newFixture(t)
	ctx := context.Background()

	group, err := store.CreateGroup(ctx, "cats", "Cats", "feline content")
	require.NoError(t, err)

	before := globalCount(t, store)
	post, err := service.CreatePost(ctx, author, PostInput{Text: "hello feed", GroupSlug: "cats"})
	require.NoError(t, err)
	assert.Equal(t, before+1, globalCount(t, store))

	got, err := store.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello feed", got.Text)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, group.ID, *got.GroupID)
	assert.Equal(t, "leo", got.Author)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreatePostEmptyTextFailsValidation(t *testing.T) {
	service, store, author := newFixture(t)
	ctx := context.Background()

	before := globalCount(t, store)
	_, err := service.CreatePost(ctx, author, PostInput{Text: "   "})

	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "text", vErr.Field)
	assert.Equal(t, before, globalCount(t, store), "a rejected post must not be persisted")
}

func TestCreatePostUnknownGroupFailsValidation(t *testing.T) {
	service, _, author := newFixture(t)

	_, err := service.CreatePost(context.Background(), author, PostInput{Text: "hi", GroupSlug: "nope"})

	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "group", vErr.Field)
}

func TestCreatePostWithoutGroup(t *testing.T) {
	service, _, author := newFixture(t)

	post, err := service.CreatePost(context.Background(), author, PostInput{Text: "no group"})
	require.NoError(t, err)
	assert.Nil(t, post.GroupID)
	assert.Empty(t, post.GroupSlug)
}

func TestEditPostByAuthorOverwritesFields(t *testing.T) {
	service, store, author := newFixture(t)
	ctx := context.Background()

	_, err := store.CreateGroup(ctx, "cats", "Cats", "feline content")
	require.NoError(t, err)
	post, err := service.CreatePost(ctx, author, PostInput{Text: "original", GroupSlug: "cats"})
	require.NoError(t, err)

	before := globalCount(t, store)
	edited, err := service.EditPost(ctx, author, post.ID, PostInput{Text: "rewritten"})
	require.NoError(t, err)

	assert.Equal(t, before, globalCount(t, store), "edit must not change the post count")
	assert.Equal(t, "rewritten", edited.Text)
	assert.Nil(t, edited.GroupID, "a full overwrite clears the group when none is given")
	assert.Equal(t, post.AuthorID, edited.AuthorID)
	assert.True(t, edited.CreatedAt.Equal(post.CreatedAt), "creation timestamp is immutable")
}

func TestEditPostByNonAuthorIsForbidden(t *testing.T) {
	service, store, author := newFixture(t)
	ctx := context.Background()

	intruder, err := store.CreateUser(ctx, "mia", "hash")
	require.NoError(t, err)
	post, err := service.CreatePost(ctx, author, PostInput{Text: "mine"})
	require.NoError(t, err)

	_, err = service.EditPost(ctx, intruder, post.ID, PostInput{Text: "hijacked"})
	assert.ErrorIs(t, err, types.ErrForbidden)

	got, err := store.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Text, "a forbidden edit must leave the post untouched")
}

func TestEditPostUnknownIDIsNotFound(t *testing.T) {
	service, _, author := newFixture(t)

	_, err := service.EditPost(context.Background(), author, 404, PostInput{Text: "anything"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEditPostEmptyTextFailsValidation(t *testing.T) {
	service, store, author := newFixture(t)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, author, PostInput{Text: "keep me"})
	require.NoError(t, err)

	_, err = service.EditPost(ctx, author, post.ID, PostInput{Text: ""})
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)

	got, err := store.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Text)
}

func TestEditPostKeepsImageWhenNoneUploaded(t *testing.T) {
	service, store, author := newFixture(t)
	ctx := context.Background()

	image := "posts/cat.png"
	post, err := service.CreatePost(ctx, author, PostInput{Text: "with image", Image: &image})
	require.NoError(t, err)

	_, err = service.EditPost(ctx, author, post.ID, PostInput{Text: "still with image"})
	require.NoError(t, err)

	got, err := store.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, image, got.ImagePath)
}

func TestAddCommentAppendsToPost(t *testing.T) {
	service, store, author := newFixture(t)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, author, PostInput{Text: "post"})
	require.NoError(t, err)

	comment, err := service.AddComment(ctx, author, post.ID, "  nice one  ")
	require.NoError(t, err)
	assert.Equal(t, "nice one", comment.Text)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "leo", comment.Author)

	comments, err := store.CommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestAddCommentUnknownPostIsNotFound(t *testing.T) {
	service, _, author := newFixture(t)

	_, err := service.AddComment(context.Background(), author, 404, "hello?")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddCommentEmptyTextFailsValidation(t *testing.T) {
	service, _, author := newFixture(t)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, author, PostInput{Text: "post"})
	require.NoError(t, err)

	_, err = service.AddComment(ctx, author, post.ID, "   ")
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "text", vErr.Field)
}
