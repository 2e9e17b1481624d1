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

// ReviewRepository handles review data access
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		pool: pool,
	}
}

const reviewColumns = `id, session_id, student_email, rating, feedback, created_at, updated_at`

func scanReview(row pgx.Row) (*models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.SessionID, &rv.StudentEmail, &rv.Rating,
		&rv.Feedback, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a review. The unique index on
// (session_id, student_email) guarantees one review per student per
// session; the application-level Exists check is only an early exit.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	start := time.Now()

	query := `
		INSERT INTO reviews (session_id, student_email, rating, feedback)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reviewColumns

	created, err := scanReview(r.pool.QueryRow(ctx, query,
		review.SessionID, review.StudentEmail, review.Rating, review.Feedback))
	observe("reviews.create", start, err)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ConflictError("review already exists for this session")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return created, nil
}

// GetByID fetches a review by id
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	start := time.Now()

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.pool.QueryRow(ctx, query, id))
	observe("reviews.get_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("review")
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// GetBySessionID fetches reviews for a session, newest first
func (r *ReviewRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Review, error) {
	start := time.Now()

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE session_id = $1 ORDER BY created_at DESC`

	reviews, err := r.queryReviews(ctx, query, sessionID)
	observe("reviews.get_by_session", start, err)
	return reviews, err
}

// GetByStudentEmail fetches a student's reviews, newest first
func (r *ReviewRepository) GetByStudentEmail(ctx context.Context, email string) ([]*models.Review, error) {
	start := time.Now()

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE student_email = $1 ORDER BY created_at DESC`

	reviews, err := r.queryReviews(ctx, query, email)
	observe("reviews.get_by_student", start, err)
	return reviews, err
}

// Exists reports whether a student already reviewed a session
func (r *ReviewRepository) Exists(ctx context.Context, sessionID, studentEmail string) (bool, error) {
	start := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE session_id = $1 AND student_email = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, sessionID, studentEmail).Scan(&exists)
	observe("reviews.exists", start, err)
	if err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}

	return exists, nil
}

// Update applies a partial edit to a review
func (r *ReviewRepository) Update(ctx context.Context, id string, req *models.UpdateReviewRequest) (*models.Review, error) {
	start := time.Now()

	setClauses := "updated_at = now()"
	args := []interface{}{id}

	if req.Rating != nil {
		args = append(args, *req.Rating)
		setClauses += fmt.Sprintf(", rating = $%d", len(args))
	}
	if req.Feedback != nil {
		args = append(args, *req.Feedback)
		setClauses += fmt.Sprintf(", feedback = $%d", len(args))
	}

	query := fmt.Sprintf(`
		UPDATE reviews SET %s
		WHERE id = $1
		RETURNING %s`, setClauses, reviewColumns)

	review, err := scanReview(r.pool.QueryRow(ctx, query, args...))
	observe("reviews.update", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("review")
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return review, nil
}

// Delete removes a review
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	observe("reviews.delete", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("review")
	}

	return nil
}

func (r *ReviewRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]*models.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

var _ ReviewStore = (*ReviewRepository)(nil)
