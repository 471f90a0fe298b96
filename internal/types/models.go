package types

import (
	"time"
)

// ====== DATABASE MODELS ======

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	JoinedAt     time.Time `db:"joined_at" json:"joinedAt"`
}

type Group struct {
	ID          int64  `db:"id" json:"id"`
	Slug        string `db:"slug" json:"slug"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
}

// Post carries its author username and group slug resolved at read time so
// feed pages never need follow-up lookups per item.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"-"`
	Author    string    `json:"author"`
	GroupID   *int64    `db:"group_id" json:"-"`
	GroupSlug string    `json:"group,omitempty"`
	Text      string    `db:"text" json:"text"`
	ImagePath string    `db:"image_path" json:"image,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"postId"`
	AuthorID  int64     `db:"author_id" json:"-"`
	Author    string    `json:"author"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ====== FEED SCOPING ======

// FeedScope narrows a post listing. Zero value means the global feed; at most
// one of GroupID/AuthorID is set by callers.
type FeedScope struct {
	GroupID  *int64
	AuthorID *int64
}

// ====== RESPONSE TYPES ======

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
