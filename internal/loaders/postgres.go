package loaders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

const uniqueViolation = "23505"

// PostgresClient wraps a pgx pool and implements storage.Store.
type PostgresClient struct {
	Pool *pgxpool.Pool
}

func NewPostgresClient(ctx context.Context, databaseURL string) (*PostgresClient, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	utils.Zlog.Info("Connected to Postgres")
	return &PostgresClient{Pool: pool}, nil
}

func (c *PostgresClient) Close() {
	c.Pool.Close()
}

// EnsureSchema creates the tables on first boot. Referential actions encode
// the lifecycle rules: deleting an author removes their posts and comments,
// deleting a group only clears the reference on its posts.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			joined_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS groups (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			group_id BIGINT REFERENCES groups(id) ON DELETE SET NULL,
			text TEXT NOT NULL,
			image_path TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC, id DESC)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id BIGSERIAL PRIMARY KEY,
			post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := c.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	utils.Zlog.Info("Schema ensured")
	return nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return types.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return types.ErrConflict
	}
	return err
}

// ====== USERS ======

func (c *PostgresClient) CreateUser(ctx context.Context, username, passwordHash string) (*types.User, error) {
	var user types.User
	err := c.Pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, username, password_hash, joined_at`,
		username, passwordHash,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.JoinedAt)
	if err != nil {
		return nil, mapError(err)
	}
	utils.Zlog.Info("User created", zap.Int64("userId", user.ID), zap.String("username", user.Username))
	return &user, nil
}

func (c *PostgresClient) UserByID(ctx context.Context, id int64) (*types.User, error) {
	var user types.User
	err := c.Pool.QueryRow(ctx,
		`SELECT id, username, password_hash, joined_at FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.JoinedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (c *PostgresClient) UserByUsername(ctx context.Context, username string) (*types.User, error) {
	var user types.User
	err := c.Pool.QueryRow(ctx,
		`SELECT id, username, password_hash, joined_at FROM users WHERE username = $1`, username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.JoinedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// ====== GROUPS ======

func (c *PostgresClient) CreateGroup(ctx context.Context, slug, title, description string) (*types.Group, error) {
	var group types.Group
	err := c.Pool.QueryRow(ctx,
		`INSERT INTO groups (slug, title, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, slug, title, description`,
		slug, title, description,
	).Scan(&group.ID, &group.Slug, &group.Title, &group.Description)
	if err != nil {
		return nil, mapError(err)
	}
	return &group, nil
}

func (c *PostgresClient) GroupByID(ctx context.Context, id int64) (*types.Group, error) {
	var group types.Group
	err := c.Pool.QueryRow(ctx,
		`SELECT id, slug, title, description FROM groups WHERE id = $1`, id,
	).Scan(&group.ID, &group.Slug, &group.Title, &group.Description)
	if err != nil {
		return nil, mapError(err)
	}
	return &group, nil
}

func (c *PostgresClient) GroupBySlug(ctx context.Context, slug string) (*types.Group, error) {
	var group types.Group
	err := c.Pool.QueryRow(ctx,
		`SELECT id, slug, title, description FROM groups WHERE slug = $1`, slug,
	).Scan(&group.ID, &group.Slug, &group.Title, &group.Description)
	if err != nil {
		return nil, mapError(err)
	}
	return &group, nil
}

func (c *PostgresClient) DeleteGroup(ctx context.Context, id int64) error {
	tag, err := c.Pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ====== POSTS ======

const postColumns = `p.id, p.author_id, u.username, p.group_id, COALESCE(g.slug, ''), p.text, p.image_path, p.created_at`

const postFrom = `FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

func scanPost(row pgx.Row) (*types.Post, error) {
	var post types.Post
	err := row.Scan(&post.ID, &post.AuthorID, &post.Author, &post.GroupID,
		&post.GroupSlug, &post.Text, &post.ImagePath, &post.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &post, nil
}

func (c *PostgresClient) CreatePost(ctx context.Context, post *types.Post) (*types.Post, error) {
	var id int64
	err := c.Pool.QueryRow(ctx,
		`INSERT INTO posts (author_id, group_id, text, image_path)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		post.AuthorID, post.GroupID, post.Text, post.ImagePath,
	).Scan(&id)
	if err != nil {
		return nil, mapError(err)
	}
	return c.PostByID(ctx, id)
}

func (c *PostgresClient) UpdatePost(ctx context.Context, post *types.Post) error {
	// author_id and created_at stay untouched.
	tag, err := c.Pool.Exec(ctx,
		`UPDATE posts SET text = $1, group_id = $2, image_path = $3 WHERE id = $4`,
		post.Text, post.GroupID, post.ImagePath, post.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (c *PostgresClient) PostByID(ctx context.Context, id int64) (*types.Post, error) {
	row := c.Pool.QueryRow(ctx,
		`SELECT `+postColumns+` `+postFrom+` WHERE p.id = $1`, id)
	return scanPost(row)
}

func scopeClause(scope types.FeedScope) (string, []interface{}) {
	if scope.GroupID != nil {
		return `WHERE p.group_id = $1`, []interface{}{*scope.GroupID}
	}
	if scope.AuthorID != nil {
		return `WHERE p.author_id = $1`, []interface{}{*scope.AuthorID}
	}
	return ``, nil
}

func (c *PostgresClient) CountPosts(ctx context.Context, scope types.FeedScope) (int, error) {
	clause, args := scopeClause(scope)
	var count int
	err := c.Pool.QueryRow(ctx, `SELECT count(*) FROM posts p `+clause, args...).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (c *PostgresClient) ListPosts(ctx context.Context, scope types.FeedScope, limit, offset int) ([]types.Post, error) {
	clause, args := scopeClause(scope)
	query := fmt.Sprintf(
		`SELECT %s %s %s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		postColumns, postFrom, clause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := c.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	posts := []types.Post{}
	for rows.Next() {
		var post types.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Author, &post.GroupID,
			&post.GroupSlug, &post.Text, &post.ImagePath, &post.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// ====== COMMENTS ======

func (c *PostgresClient) CreateComment(ctx context.Context, comment *types.Comment) (*types.Comment, error) {
	var out types.Comment
	err := c.Pool.QueryRow(ctx,
		`INSERT INTO comments (post_id, author_id, text)
		 VALUES ($1, $2, $3)
		 RETURNING id, post_id, author_id, text, created_at`,
		comment.PostID, comment.AuthorID, comment.Text,
	).Scan(&out.ID, &out.PostID, &out.AuthorID, &out.Text, &out.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	out.Author = comment.Author
	if out.Author == "" {
		if author, err := c.UserByID(ctx, out.AuthorID); err == nil {
			out.Author = author.Username
		}
	}
	return &out, nil
}

func (c *PostgresClient) CommentsByPost(ctx context.Context, postID int64) ([]types.Comment, error) {
	rows, err := c.Pool.Query(ctx,
		`SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	comments := []types.Comment{}
	for rows.Next() {
		var comment types.Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Author, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
