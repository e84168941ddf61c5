// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and startup seeding of
// roles and the bootstrap admin account.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/microblog/internal/common"
	"github.com/avolkov/microblog/internal/dbx"
	"github.com/avolkov/microblog/internal/server/config"
	"github.com/avolkov/microblog/internal/server/models"
	"github.com/avolkov/microblog/internal/server/repositories/repomanager"
)

// UserService provides identity-related operations:
// - Register: validate input, create users, assign the default role
// - Login: verify credentials
// - Seed: ensure roles and the optional bootstrap admin exist
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cfg         *config.Config
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{db: db, repomanager: m, cfg: cfg}
}

// Register validates the input, creates the user with a bcrypt password hash,
// and assigns the default "user" role, all in one transaction. Validation and
// uniqueness failures are returned as *ValidationError with per-field detail.
// On success the user and its role set are returned.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*models.User, []string, error) {

	if err := validateRegistration(email, username, password); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &models.User{Email: email, UserName: username, PasswordHash: string(hash)}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		return s.repomanager.Roles(tx).AddToRole(ctx, created.ID, models.RoleUser)
	}); err != nil {
		ve := &ValidationError{}
		switch {
		case errors.Is(err, common.ErrorDuplicateEmail):
			ve.add("email", "is already taken")
			return nil, nil, ve
		case errors.Is(err, common.ErrorDuplicateUserName):
			ve.add("username", "is already taken")
			return nil, nil, ve
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	roles, err := s.repomanager.Roles(s.db).GetRoles(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching roles: %w", err)
	}

	return user, roles, nil
}

// Login verifies the provided credentials and returns the user with its role
// set. A missing user and a wrong password both yield ErrorUnauthorized so
// callers cannot tell which check failed.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, []string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	roles, err := s.repomanager.Roles(s.db).GetRoles(ctx, user.ID)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, roles, nil
}

// Seed ensures the fixed role set exists and, when bootstrap admin credentials
// are configured and no such user exists yet, creates the admin with roles
// {admin, user}. Idempotent across restarts.
func (s *UserService) Seed(ctx context.Context) error {
	rolesRepo := s.repomanager.Roles(s.db)
	for _, name := range []string{models.RoleUser, models.RoleAdmin} {
		if err := rolesRepo.Ensure(ctx, name); err != nil {
			return fmt.Errorf("error seeding role %s: %w", name, err)
		}
	}

	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, s.cfg.AdminEmail)
	if err == nil {
		return nil // admin already exists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error looking up admin: %w", err)
	}

	username := s.cfg.AdminUserName
	if username == "" {
		username = s.cfg.AdminEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &models.User{Email: s.cfg.AdminEmail, UserName: username, PasswordHash: string(hash)}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, admin)
		if err != nil {
			return fmt.Errorf("error creating admin: %w", err)
		}
		txRoles := s.repomanager.Roles(tx)
		for _, name := range []string{models.RoleAdmin, models.RoleUser} {
			if err := txRoles.AddToRole(ctx, created.ID, name); err != nil {
				return fmt.Errorf("error assigning role %s: %w", name, err)
			}
		}
		return nil
	})
}
