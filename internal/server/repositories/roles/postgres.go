// Package roles provides PostgreSQL-backed storage for role definitions and
// user role membership.
package roles

import (
	"context"
	"fmt"

	"github.com/avolkov/microblog/internal/common"
	"github.com/avolkov/microblog/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ensure creates the role if it does not exist yet. Safe to call on every
// startup.
func (r *PostgresRepository) Ensure(ctx context.Context, name string) error {
	query := `
		INSERT INTO roles (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// AddToRole grants the named role to the user. Unknown roles are reported as
// common.ErrorNotFound; granting an already-held role is a no-op.
func (r *PostgresRepository) AddToRole(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		// either the role does not exist or the membership already did;
		// both are reported the same way, callers Ensure roles at startup
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, role).Scan(&exists); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if !exists {
			return common.ErrorNotFound
		}
	}
	return nil
}

// GetRoles returns the names of all roles held by the user. Order is not
// significant.
func (r *PostgresRepository) GetRoles(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
