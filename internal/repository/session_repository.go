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

// SessionRepository handles tutoring session data access
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		pool: pool,
	}
}

const sessionColumns = `id, title, tutor_email, tutor_name, description,
	registration_start_date, registration_end_date, class_start_date,
	class_end_date, duration_hours, session_type, price, status,
	rejection_reason, rejection_feedback, created_at, updated_at`

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	err := row.Scan(
		&s.ID, &s.Title, &s.TutorEmail, &s.TutorName, &s.Description,
		&s.RegistrationStartDate, &s.RegistrationEndDate, &s.ClassStartDate,
		&s.ClassEndDate, &s.DurationHours, &s.SessionType, &s.Price, &s.Status,
		&s.RejectionReason, &s.RejectionFeedback, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new session with status pending
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	start := time.Now()

	query := `
		INSERT INTO sessions (
			title, tutor_email, tutor_name, description,
			registration_start_date, registration_end_date,
			class_start_date, class_end_date, duration_hours
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + sessionColumns

	created, err := scanSession(r.pool.QueryRow(ctx, query,
		session.Title, session.TutorEmail, session.TutorName, session.Description,
		session.RegistrationStartDate, session.RegistrationEndDate,
		session.ClassStartDate, session.ClassEndDate, session.DurationHours,
	))
	observe("sessions.create", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return created, nil
}

// GetByID fetches a session by id
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	start := time.Now()

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(r.pool.QueryRow(ctx, query, id))
	observe("sessions.get_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("session")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// GetAll fetches all sessions, newest first
func (r *SessionRepository) GetAll(ctx context.Context) ([]*models.Session, error) {
	start := time.Now()

	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at DESC`

	sessions, err := r.querySessions(ctx, query)
	observe("sessions.get_all", start, err)
	return sessions, err
}

// GetApproved fetches approved sessions sorted by registration start
// date, earliest first, capped at limit.
func (r *SessionRepository) GetApproved(ctx context.Context, limit int) ([]*models.Session, error) {
	start := time.Now()

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE status = $1
		ORDER BY registration_start_date ASC NULLS LAST
		LIMIT $2`

	sessions, err := r.querySessions(ctx, query, models.SessionStatusApproved, limit)
	observe("sessions.get_approved", start, err)
	return sessions, err
}

// GetByTutorEmail fetches a tutor's sessions, newest first
func (r *SessionRepository) GetByTutorEmail(ctx context.Context, email string) ([]*models.Session, error) {
	start := time.Now()

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE tutor_email = $1 ORDER BY created_at DESC`

	sessions, err := r.querySessions(ctx, query, email)
	observe("sessions.get_by_tutor", start, err)
	return sessions, err
}

// GetByTutorEmailAndStatus fetches a tutor's sessions filtered by status
func (r *SessionRepository) GetByTutorEmailAndStatus(ctx context.Context, email, status string) ([]*models.Session, error) {
	start := time.Now()

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE tutor_email = $1 AND status = $2
		ORDER BY created_at DESC`

	sessions, err := r.querySessions(ctx, query, email, status)
	observe("sessions.get_by_tutor_status", start, err)
	return sessions, err
}

// UpdateStatus moves a session from fromStatus to toStatus, optionally
// setting extra fields. The WHERE clause on the source status makes the
// transition atomic: a session that is not in fromStatus is left
// untouched and ErrConflict is returned.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, fields map[string]interface{}) (*models.Session, error) {
	start := time.Now()

	setClauses := "status = $3, updated_at = now()"
	args := []interface{}{id, fromStatus, toStatus}

	allowed := map[string]string{
		"session_type":       "session_type",
		"price":              "price",
		"rejection_reason":   "rejection_reason",
		"rejection_feedback": "rejection_feedback",
	}
	for field, value := range fields {
		column, ok := allowed[field]
		if !ok {
			return nil, fmt.Errorf("unknown session field: %s", field)
		}
		args = append(args, value)
		setClauses += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	query := fmt.Sprintf(`
		UPDATE sessions SET %s
		WHERE id = $1 AND status = $2
		RETURNING %s`, setClauses, sessionColumns)

	session, err := scanSession(r.pool.QueryRow(ctx, query, args...))
	observe("sessions.update_status", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the session is gone or it is not in fromStatus;
			// disambiguate for the caller.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, apperrors.ConflictError(fmt.Sprintf("session is not %s", fromStatus))
		}
		return nil, fmt.Errorf("failed to update session status: %w", err)
	}

	return session, nil
}

// Update applies a partial edit to a session
func (r *SessionRepository) Update(ctx context.Context, id string, req *models.UpdateSessionRequest) (*models.Session, error) {
	start := time.Now()

	setClauses := "updated_at = now()"
	args := []interface{}{id}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.RegistrationStartDate != nil {
		addSet("registration_start_date", *req.RegistrationStartDate)
	}
	if req.RegistrationEndDate != nil {
		addSet("registration_end_date", *req.RegistrationEndDate)
	}
	if req.ClassStartDate != nil {
		addSet("class_start_date", *req.ClassStartDate)
	}
	if req.ClassEndDate != nil {
		addSet("class_end_date", *req.ClassEndDate)
	}
	if req.DurationHours != nil {
		addSet("duration_hours", *req.DurationHours)
	}
	if req.Price != nil {
		addSet("price", *req.Price)
	}
	if req.SessionType != nil {
		addSet("session_type", *req.SessionType)
	}

	query := fmt.Sprintf(`
		UPDATE sessions SET %s
		WHERE id = $1
		RETURNING %s`, setClauses, sessionColumns)

	session, err := scanSession(r.pool.QueryRow(ctx, query, args...))
	observe("sessions.update", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("session")
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// DeleteCascade removes a session and its dependent materials, bookings
// and reviews in one transaction. Without foreign keys the application
// owns the cascade.
func (r *SessionRepository) DeleteCascade(ctx context.Context, id string) error {
	start := time.Now()

	err := r.deleteCascade(ctx, id)
	observe("sessions.delete_cascade", start, err)
	return err
}

func (r *SessionRepository) deleteCascade(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("session")
	}

	// Dependents reference the session by its text id
	if _, err := tx.Exec(ctx, `DELETE FROM materials WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session materials: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM booked_sessions WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session bookings: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session reviews: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session delete: %w", err)
	}

	return nil
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...interface{}) ([]*models.Session, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

var _ SessionStore = (*SessionRepository)(nil)
