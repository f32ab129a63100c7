package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/dberrors"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// IAdminUserRepository defines the database operations on admin users
type IAdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	GetByID(ctx context.Context, id int64) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// AdminUserRepository handles admin user database operations
type AdminUserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

// Create inserts an admin user; emails are stored lower-case
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	sql, args, err := r.sb.Insert("admin_users").
		Columns("email", "password_hash", "display_name").
		Values(user.Email, user.PasswordHash, user.DisplayName).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create admin user SQL")
		return fmt.Errorf("failed to build create admin user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create admin user query")
		return fmt.Errorf("error creating admin user: %w", err)
	}
	return nil
}

func (r *AdminUserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.AdminUser, error) {
	sql, args, err := r.sb.Select("id", "email", "password_hash", "display_name", "created_at").
		From("admin_users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get admin user SQL")
		return nil, fmt.Errorf("failed to build get admin user query: %w", err)
	}

	u := &models.AdminUser{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning admin user row")
		return nil, fmt.Errorf("error getting admin user: %w", err)
	}
	return u, nil
}

// GetByID retrieves an admin user by ID
func (r *AdminUserRepository) GetByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an admin user by email, case-insensitively
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return r.getOne(ctx, squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

// EmailExists checks if an admin with this email exists
func (r *AdminUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM admin_users WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking admin email existence: %w", err)
	}
	return exists, nil
}
