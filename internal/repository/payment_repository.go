package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyhive/studyhive-api/internal/models"
)

// PaymentRepository handles payment data access. Payment rows are only
// ever written through BookingRepository.CreateWithPayment; this
// repository is read-side.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool: pool,
	}
}

const paymentColumns = `id, session_id, student_email, tutor_email, amount, payment_intent_id, status, payment_date`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.SessionID, &p.StudentEmail, &p.TutorEmail,
		&p.Amount, &p.PaymentIntentID, &p.Status, &p.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByStudentEmail fetches a student's payments, newest first
func (r *PaymentRepository) GetByStudentEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	start := time.Now()

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_email = $1 ORDER BY payment_date DESC`

	payments, err := r.queryPayments(ctx, query, email)
	observe("payments.get_by_student", start, err)
	return payments, err
}

// GetRecent fetches the most recent payments across all students
func (r *PaymentRepository) GetRecent(ctx context.Context, limit int) ([]*models.Payment, error) {
	start := time.Now()

	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_date DESC LIMIT $1`

	payments, err := r.queryPayments(ctx, query, limit)
	observe("payments.get_recent", start, err)
	return payments, err
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

var _ PaymentStore = (*PaymentRepository)(nil)
