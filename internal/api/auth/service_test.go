package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhub/quill/internal/storage"
	"github.com/quillhub/quill/internal/types"
)

const testSecret = "test-secret"

func newService() *Service {
	return NewService(storage.NewMemoryStore(), testSecret, time.Hour)
}

func TestSignupAndLoginRoundTrip(t *testing.T) {
	service := newService()
	ctx := context.Background()

	user, err := service.Signup(ctx, SignupRequest{Username: "leo", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "leo", user.Username)
	assert.NotEqual(t, "correct-horse", user.PasswordHash, "password must be stored hashed")

	token, got, err := service.Login(ctx, LoginRequest{Username: "leo", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "leo", claims.Username)
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	service := newService()
	ctx := context.Background()

	_, err := service.Signup(ctx, SignupRequest{Username: "leo", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, SignupRequest{Username: "leo", Password: "other-password"})
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)
}

func TestSignupValidation(t *testing.T) {
	service := newService()
	ctx := context.Background()

	var vErr *types.ValidationError

	_, err := service.Signup(ctx, SignupRequest{Username: "", Password: "correct-horse"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)

	_, err = service.Signup(ctx, SignupRequest{Username: "has spaces", Password: "correct-horse"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)

	_, err = service.Signup(ctx, SignupRequest{Username: "leo", Password: "short"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
}

func TestLoginWrongPassword(t *testing.T) {
	service := newService()
	ctx := context.Background()

	_, err := service.Signup(ctx, SignupRequest{Username: "leo", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = service.Login(ctx, LoginRequest{Username: "leo", Password: "wrong-horse"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	service := newService()

	_, _, err := service.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken("secret-a", 1, "leo", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := IssueToken(testSecret, 1, "leo", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}
