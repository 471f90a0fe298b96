package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillhub/quill/internal/storage"
	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

// ErrBadCredentials covers both unknown-user and wrong-password so login
// failures never reveal which half was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

type Service struct {
	store      storage.Store
	secret     string
	sessionTTL time.Duration
}

func NewService(store storage.Store, secret string, sessionTTL time.Duration) *Service {
	return &Service{store: store, secret: secret, sessionTTL: sessionTTL}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*types.User, error) {
	if err := ValidateSignupRequest(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, req.Username, string(hash))
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			return nil, types.NewValidationError("username", "already taken")
		}
		return nil, err
	}

	utils.Zlog.Info("User registered", zap.String("username", user.Username))
	return user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *types.User, error) {
	user, err := s.store.UserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := IssueToken(s.secret, user.ID, user.Username, s.sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}
