package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyhive/studyhive-api/internal/models"
)

// StatsRepository serves cross-table reporting aggregates
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		pool: pool,
	}
}

// AdminStats computes platform-wide counters in a single round trip
func (r *StatsRepository) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	start := time.Now()

	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'student'),
			(SELECT COUNT(*) FROM users WHERE role = 'tutor'),
			(SELECT COUNT(*) FROM users WHERE role = 'admin'),
			(SELECT COUNT(*) FROM sessions),
			(SELECT COUNT(*) FROM sessions WHERE status = 'pending'),
			(SELECT COUNT(*) FROM sessions WHERE status = 'approved'),
			(SELECT COUNT(*) FROM sessions WHERE status = 'rejected'),
			(SELECT COUNT(*) FROM booked_sessions),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed')`

	var stats models.AdminStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalStudents, &stats.TotalTutors, &stats.TotalAdmins,
		&stats.TotalSessions, &stats.PendingSessions, &stats.ApprovedSessions,
		&stats.RejectedSessions, &stats.TotalBookings, &stats.TotalRevenue,
	)
	observe("stats.admin", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to compute admin stats: %w", err)
	}

	return &stats, nil
}

// RecentSessions fetches the most recently created sessions
func (r *StatsRepository) RecentSessions(ctx context.Context, limit int) ([]*models.Session, error) {
	start := time.Now()

	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		observe("stats.recent_sessions", start, err)
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session, scanErr := scanSession(rows)
		if scanErr != nil {
			observe("stats.recent_sessions", start, scanErr)
			return nil, fmt.Errorf("failed to scan session: %w", scanErr)
		}
		sessions = append(sessions, session)
	}

	observe("stats.recent_sessions", start, rows.Err())
	return sessions, rows.Err()
}

// RecentBookings fetches the most recent bookings
func (r *StatsRepository) RecentBookings(ctx context.Context, limit int) ([]*models.BookedSession, error) {
	start := time.Now()

	query := `SELECT ` + bookingColumns + ` FROM booked_sessions ORDER BY booking_date DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		observe("stats.recent_bookings", start, err)
		return nil, fmt.Errorf("failed to query recent bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.BookedSession{}
	for rows.Next() {
		booking, scanErr := scanBooking(rows)
		if scanErr != nil {
			observe("stats.recent_bookings", start, scanErr)
			return nil, fmt.Errorf("failed to scan booking: %w", scanErr)
		}
		bookings = append(bookings, booking)
	}

	observe("stats.recent_bookings", start, rows.Err())
	return bookings, rows.Err()
}

// TutorAggregates computes a tutor's distinct student count, hours
// taught across bookings, and completed earnings.
func (r *StatsRepository) TutorAggregates(ctx context.Context, tutorEmail string) (int64, float64, float64, error) {
	start := time.Now()

	query := `
		SELECT
			(SELECT COUNT(DISTINCT student_email) FROM booked_sessions WHERE tutor_email = $1),
			(SELECT COALESCE(SUM(duration_hours), 0) FROM booked_sessions WHERE tutor_email = $1),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE tutor_email = $1 AND status = 'completed')`

	var students int64
	var hours, earnings float64
	err := r.pool.QueryRow(ctx, query, tutorEmail).Scan(&students, &hours, &earnings)
	observe("stats.tutor_aggregates", start, err)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to compute tutor aggregates: %w", err)
	}

	return students, hours, earnings, nil
}

var _ StatsStore = (*StatsRepository)(nil)
