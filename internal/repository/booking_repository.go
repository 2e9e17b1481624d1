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

// BookingRepository handles booked session data access
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{
		pool: pool,
	}
}

const bookingColumns = `id, session_id, student_email, student_name, tutor_email,
	session_title, class_start_date, class_end_date, duration_hours,
	payment_status, payment_intent_id, booking_date`

const insertBookingQuery = `
	INSERT INTO booked_sessions (
		session_id, student_email, student_name, tutor_email, session_title,
		class_start_date, class_end_date, duration_hours,
		payment_status, payment_intent_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + bookingColumns

func scanBooking(row pgx.Row) (*models.BookedSession, error) {
	var b models.BookedSession
	err := row.Scan(
		&b.ID, &b.SessionID, &b.StudentEmail, &b.StudentName, &b.TutorEmail,
		&b.SessionTitle, &b.ClassStartDate, &b.ClassEndDate, &b.DurationHours,
		&b.PaymentStatus, &b.PaymentIntentID, &b.BookingDate,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a free booking. The unique index on
// (session_id, student_email) is the duplicate backstop.
func (r *BookingRepository) Create(ctx context.Context, booking *models.BookedSession) (*models.BookedSession, error) {
	start := time.Now()

	created, err := scanBooking(r.pool.QueryRow(ctx, insertBookingQuery,
		booking.SessionID, booking.StudentEmail, booking.StudentName,
		booking.TutorEmail, booking.SessionTitle,
		booking.ClassStartDate, booking.ClassEndDate, booking.DurationHours,
		booking.PaymentStatus, booking.PaymentIntentID,
	))
	observe("bookings.create", start, err)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ConflictError("session already booked")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return created, nil
}

// CreateWithPayment inserts the payment record and the booking in one
// transaction. Either both rows exist afterwards or neither does, so a
// confirmed charge can never be recorded without its booking.
func (r *BookingRepository) CreateWithPayment(ctx context.Context, booking *models.BookedSession, payment *models.Payment) (*models.BookedSession, error) {
	start := time.Now()

	created, err := r.createWithPayment(ctx, booking, payment)
	observe("bookings.create_with_payment", start, err)
	return created, err
}

func (r *BookingRepository) createWithPayment(ctx context.Context, booking *models.BookedSession, payment *models.Payment) (*models.BookedSession, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (session_id, student_email, tutor_email, amount, payment_intent_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		payment.SessionID, payment.StudentEmail, payment.TutorEmail,
		payment.Amount, payment.PaymentIntentID, models.PaymentStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	created, err := scanBooking(tx.QueryRow(ctx, insertBookingQuery,
		booking.SessionID, booking.StudentEmail, booking.StudentName,
		booking.TutorEmail, booking.SessionTitle,
		booking.ClassStartDate, booking.ClassEndDate, booking.DurationHours,
		booking.PaymentStatus, booking.PaymentIntentID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ConflictError("session already booked")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return created, nil
}

// GetByID fetches a booking by id
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.BookedSession, error) {
	start := time.Now()

	query := `SELECT ` + bookingColumns + ` FROM booked_sessions WHERE id = $1`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	observe("bookings.get_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("booking")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// GetByStudentEmail fetches a student's bookings, newest first
func (r *BookingRepository) GetByStudentEmail(ctx context.Context, email string) ([]*models.BookedSession, error) {
	start := time.Now()

	query := `SELECT ` + bookingColumns + ` FROM booked_sessions WHERE student_email = $1 ORDER BY booking_date DESC`

	bookings, err := r.queryBookings(ctx, query, email)
	observe("bookings.get_by_student", start, err)
	return bookings, err
}

// GetByTutorEmail fetches bookings of a tutor's sessions, newest first
func (r *BookingRepository) GetByTutorEmail(ctx context.Context, email string) ([]*models.BookedSession, error) {
	start := time.Now()

	query := `SELECT ` + bookingColumns + ` FROM booked_sessions WHERE tutor_email = $1 ORDER BY booking_date DESC`

	bookings, err := r.queryBookings(ctx, query, email)
	observe("bookings.get_by_tutor", start, err)
	return bookings, err
}

// Exists reports whether a student already booked a session
func (r *BookingRepository) Exists(ctx context.Context, sessionID, studentEmail string) (bool, error) {
	start := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM booked_sessions WHERE session_id = $1 AND student_email = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, sessionID, studentEmail).Scan(&exists)
	observe("bookings.exists", start, err)
	if err != nil {
		return false, fmt.Errorf("failed to check booking: %w", err)
	}

	return exists, nil
}

// CountBySessionID counts bookings for a session
func (r *BookingRepository) CountBySessionID(ctx context.Context, sessionID string) (int64, error) {
	start := time.Now()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM booked_sessions WHERE session_id = $1`, sessionID).Scan(&count)
	observe("bookings.count_by_session", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.BookedSession, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.BookedSession{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

var _ BookingStore = (*BookingRepository)(nil)
