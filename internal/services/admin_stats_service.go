package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
)

const defaultActivityLimit = 10

// AdminStatsService serves the admin dashboard
type AdminStatsService struct {
	stats    repository.StatsStore
	payments repository.PaymentStore
}

// NewAdminStatsService creates a new admin stats service instance
func NewAdminStatsService(stats repository.StatsStore, payments repository.PaymentStore) *AdminStatsService {
	return &AdminStatsService{
		stats:    stats,
		payments: payments,
	}
}

// Stats returns platform-wide counters and completed revenue
func (s *AdminStatsService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.stats.AdminStats(ctx)
}

// RecentActivities merges the latest sessions, bookings and payments
// into one feed ordered by timestamp, newest first.
func (s *AdminStatsService) RecentActivities(ctx context.Context, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	sessions, err := s.stats.RecentSessions(ctx, limit)
	if err != nil {
		return nil, err
	}
	bookings, err := s.stats.RecentBookings(ctx, limit)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	activities := make([]*models.Activity, 0, len(sessions)+len(bookings)+len(payments))

	for _, session := range sessions {
		activities = append(activities, &models.Activity{
			Type:      "session",
			Title:     fmt.Sprintf("New session proposed: %s", session.Title),
			Actor:     session.TutorEmail,
			Timestamp: session.CreatedAt,
		})
	}
	for _, booking := range bookings {
		activities = append(activities, &models.Activity{
			Type:      "booking",
			Title:     fmt.Sprintf("Session booked: %s", booking.SessionTitle),
			Actor:     booking.StudentEmail,
			Timestamp: booking.BookingDate,
		})
	}
	for _, payment := range payments {
		activities = append(activities, &models.Activity{
			Type:      "payment",
			Title:     fmt.Sprintf("Payment of %.2f received", payment.Amount),
			Actor:     payment.StudentEmail,
			Timestamp: payment.PaymentDate,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})

	if len(activities) > limit {
		activities = activities[:limit]
	}

	return activities, nil
}
