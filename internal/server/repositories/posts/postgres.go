// Package posts provides PostgreSQL-backed storage for blog posts.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/microblog/internal/common"
	"github.com/avolkov/microblog/internal/dbx"
	"github.com/avolkov/microblog/internal/server/models"
)

// PostgresRepository implements post storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// author is stored as NULL when blank so list/get responses omit it cleanly.
func nullIfBlank(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (title, content, author, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, nullIfBlank(post.Author), post.CreatedAt).Scan(&post.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, title, content, author, created_at, updated_at FROM posts
		WHERE id = $1
	`
	post := &models.Post{}
	var author sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &author, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	post.Author = author.String
	return post, nil
}

// List returns up to take posts, newest first, skipping the first skip rows.
// Clamping of skip/take is the service's concern.
func (r *PostgresRepository) List(ctx context.Context, skip, take int) ([]*models.Post, error) {
	query := `
		SELECT id, title, content, author, created_at, updated_at FROM posts
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, skip, take)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		var item models.Post
		var author sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Content, &author, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		item.Author = author.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites title, content, author, and updated_at of an existing
// post. A missing id is reported as common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET title = $1, content = $2, author = $3, updated_at = $4
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		post.Title, post.Content, nullIfBlank(post.Author), post.UpdatedAt, post.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a post. A missing id is reported as common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
