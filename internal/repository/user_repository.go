package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyhive/studyhive-api/internal/models"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
)

// UserRepository handles user data access
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool: pool,
	}
}

const userColumns = `id, email, name, role, photo_url, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PhotoURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The unique index on email is the real
// duplicate guard; callers should expect ErrConflict on races.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	start := time.Now()

	query := `
		INSERT INTO users (email, name, role, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	role := user.Role
	if role == "" {
		role = models.RoleStudent
	}

	created, err := scanUser(r.pool.QueryRow(ctx, query, user.Email, user.Name, role, user.PhotoURL))
	observe("users.create", start, err)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ConflictError("user already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByEmail fetches a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	observe("users.get_by_email", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("user")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID fetches a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	start := time.Now()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	observe("users.get_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("user")
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetAll fetches all users, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	start := time.Now()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	users, err := r.queryUsers(ctx, query)
	observe("users.get_all", start, err)
	return users, err
}

// Search finds users whose name or email matches the query,
// case-insensitively.
func (r *UserRepository) Search(ctx context.Context, query string) ([]*models.User, error) {
	start := time.Now()

	sql := `
		SELECT ` + userColumns + `
		FROM users
		WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC`

	users, err := r.queryUsers(ctx, sql, query)
	observe("users.search", start, err)
	return users, err
}

// UpdateRole sets a user's role and returns the updated record
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) (*models.User, error) {
	start := time.Now()

	query := `
		UPDATE users SET role = $2
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, role))
	observe("users.update_role", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("user")
		}
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	return user, nil
}

// GetByRole fetches all users with a given role
func (r *UserRepository) GetByRole(ctx context.Context, role string) ([]*models.User, error) {
	start := time.Now()

	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`

	users, err := r.queryUsers(ctx, query, role)
	observe("users.get_by_role", start, err)
	return users, err
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

var _ UserStore = (*UserRepository)(nil)
