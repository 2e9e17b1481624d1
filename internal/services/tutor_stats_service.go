package services

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
)

// TutorStatsService aggregates a tutor's teaching activity
type TutorStatsService struct {
	stats    repository.StatsStore
	sessions repository.SessionStore
	bookings repository.BookingStore
}

// NewTutorStatsService creates a new tutor stats service instance
func NewTutorStatsService(stats repository.StatsStore, sessions repository.SessionStore, bookings repository.BookingStore) *TutorStatsService {
	return &TutorStatsService{
		stats:    stats,
		sessions: sessions,
		bookings: bookings,
	}
}

// Stats returns a tutor's headline numbers. The growth percentages are
// randomized placeholders until per-period aggregates exist, and are
// flagged as such so clients don't chart them as real data.
func (s *TutorStatsService) Stats(ctx context.Context, tutorEmail string) (*models.TutorStats, error) {
	if tutorEmail == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}

	students, hours, earnings, err := s.stats.TutorAggregates(ctx, tutorEmail)
	if err != nil {
		return nil, err
	}

	approved, err := s.sessions.GetByTutorEmailAndStatus(ctx, tutorEmail, models.SessionStatusApproved)
	if err != nil {
		return nil, err
	}

	return &models.TutorStats{
		TotalStudents:       students,
		TotalCourses:        int64(len(approved)),
		TotalHours:          hours,
		TotalEarnings:       earnings,
		StudentGrowth:       rand.Float64()*20 + 5,
		CourseGrowth:        rand.Float64()*15 + 5,
		HoursGrowth:         rand.Float64()*25 + 10,
		EarningsGrowth:      rand.Float64()*30 - 5,
		GrowthIsPlaceholder: true,
	}, nil
}

// UpcomingSessions returns the tutor's approved sessions that have not
// started yet, each with its current booking count.
func (s *TutorStatsService) UpcomingSessions(ctx context.Context, tutorEmail string) ([]*models.TutorUpcomingSession, error) {
	if tutorEmail == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}

	approved, err := s.sessions.GetByTutorEmailAndStatus(ctx, tutorEmail, models.SessionStatusApproved)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming := []*models.TutorUpcomingSession{}
	for _, session := range approved {
		if session.ClassStartDate == nil || !session.ClassStartDate.After(now) {
			continue
		}
		count, err := s.bookings.CountBySessionID(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		upcoming = append(upcoming, &models.TutorUpcomingSession{
			Session:       *session,
			BookingsCount: count,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ClassStartDate.Before(*upcoming[j].ClassStartDate)
	})

	return upcoming, nil
}

// RecentStudents returns the latest students who booked the tutor's
// sessions.
func (s *TutorStatsService) RecentStudents(ctx context.Context, tutorEmail string, limit int) ([]*models.RecentStudent, error) {
	if tutorEmail == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}
	if limit <= 0 {
		limit = recentEntryLimit
	}

	bookings, err := s.bookings.GetByTutorEmail(ctx, tutorEmail)
	if err != nil {
		return nil, err
	}
	if len(bookings) > limit {
		bookings = bookings[:limit]
	}

	students := []*models.RecentStudent{}
	for _, booking := range bookings {
		students = append(students, &models.RecentStudent{
			StudentEmail: booking.StudentEmail,
			StudentName:  booking.StudentName,
			SessionTitle: booking.SessionTitle,
			BookingDate:  booking.BookingDate,
		})
	}

	return students, nil
}
