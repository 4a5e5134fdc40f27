package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"flamtunes/model"
)

// ErrDuplicateUser is returned when an email is already registered.
var ErrDuplicateUser = errors.New("user already exists")

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// mysqlUserRepository implements UserRepository for MySQL.
type mysqlUserRepository struct {
	DB *sql.DB
}

// NewMySQLUserRepository creates a new instance of mysqlUserRepository.
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{DB: db}
}

// CreateUser adds a new user account.
func (r *mysqlUserRepository) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	query := `INSERT INTO users (email, password_hash, is_admin) VALUES (?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query, user.Email, user.PasswordHash, user.IsAdmin)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate entry") {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("failed to execute CreateUser: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateUser: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a user by id. Returns (nil, nil) when absent.
func (r *mysqlUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, email, password_hash, is_admin, created_at, updated_at FROM users WHERE id = ?`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *mysqlUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, password_hash, is_admin, created_at, updated_at FROM users WHERE email = ?`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *mysqlUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
