package auth

import (
	"strings"

	"github.com/quillhub/quill/internal/types"
)

const minPasswordLength = 8

type SignupRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func ValidateSignupRequest(r *SignupRequest) error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return types.NewValidationError("username", "cannot be empty")
	}
	for _, ch := range r.Username {
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_' || ch == '-' || ch == '.' {
			continue
		}
		return types.NewValidationError("username", "may only contain letters, digits, '_', '-' and '.'")
	}
	if len(r.Password) < minPasswordLength {
		return types.NewValidationError("password", "must be at least 8 characters")
	}
	return nil
}
