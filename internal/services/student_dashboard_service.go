package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
)

const recentEntryLimit = 5

// StudentDashboardService aggregates a student's bookings, notes and
// reviews into dashboard views.
type StudentDashboardService struct {
	bookings  repository.BookingStore
	notes     repository.NoteStore
	reviews   repository.ReviewStore
	sessions  repository.SessionStore
	materials repository.MaterialStore
}

// NewStudentDashboardService creates a new student dashboard service
func NewStudentDashboardService(
	bookings repository.BookingStore,
	notes repository.NoteStore,
	reviews repository.ReviewStore,
	sessions repository.SessionStore,
	materials repository.MaterialStore,
) *StudentDashboardService {
	return &StudentDashboardService{
		bookings:  bookings,
		notes:     notes,
		reviews:   reviews,
		sessions:  sessions,
		materials: materials,
	}
}

// DashboardStats summarizes a student's enrollment
func (s *StudentDashboardService) DashboardStats(ctx context.Context, email string) (*models.StudentDashboardStats, error) {
	bookings, notes, err := s.load(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &models.StudentDashboardStats{
		EnrolledSessions: int64(len(bookings)),
		TotalNotes:       int64(len(notes)),
	}

	for _, b := range bookings {
		stats.HoursLearned += b.DurationHours
		switch classify(b, now) {
		case classOngoing:
			stats.OngoingSessions++
		case classUpcoming:
			stats.UpcomingSessions++
		}
	}

	return stats, nil
}

// OngoingSessions returns in-progress bookings with an elapsed-time
// progress percentage.
func (s *StudentDashboardService) OngoingSessions(ctx context.Context, email string) ([]*models.OngoingSession, error) {
	bookings, err := s.bookingsFor(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ongoing := []*models.OngoingSession{}
	for _, b := range bookings {
		if classify(b, now) != classOngoing {
			continue
		}
		ongoing = append(ongoing, &models.OngoingSession{
			BookedSession: *b,
			Progress:      progressPercent(*b.ClassStartDate, *b.ClassEndDate, now),
		})
	}

	return ongoing, nil
}

// UpcomingSessions returns future bookings with a start-proximity
// priority: within a day is high, within three days medium, else low.
func (s *StudentDashboardService) UpcomingSessions(ctx context.Context, email string) ([]*models.UpcomingSession, error) {
	bookings, err := s.bookingsFor(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming := []*models.UpcomingSession{}
	for _, b := range bookings {
		if classify(b, now) != classUpcoming {
			continue
		}
		priority, dueText := startProximity(*b.ClassStartDate, now)
		upcoming = append(upcoming, &models.UpcomingSession{
			BookedSession: *b,
			Priority:      priority,
			DueText:       dueText,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ClassStartDate.Before(*upcoming[j].ClassStartDate)
	})

	return upcoming, nil
}

// RecentPerformance maps the student's latest reviews onto the letter
// grade ladder.
func (s *StudentDashboardService) RecentPerformance(ctx context.Context, email string) ([]*models.PerformanceEntry, error) {
	if email == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}

	reviews, err := s.reviews.GetByStudentEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(reviews) > recentEntryLimit {
		reviews = reviews[:recentEntryLimit]
	}

	entries := []*models.PerformanceEntry{}
	for _, review := range reviews {
		title := ""
		if session, err := s.sessions.GetByID(ctx, review.SessionID); err == nil {
			title = session.Title
		}
		entries = append(entries, &models.PerformanceEntry{
			SessionID:    review.SessionID,
			SessionTitle: title,
			Rating:       review.Rating,
			Grade:        GradeForRating(review.Rating),
			CreatedAt:    review.CreatedAt,
		})
	}

	return entries, nil
}

// RecentNotes returns the student's latest notes
func (s *StudentDashboardService) RecentNotes(ctx context.Context, email string) ([]*models.Note, error) {
	if email == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}

	notes, err := s.notes.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(notes) > recentEntryLimit {
		notes = notes[:recentEntryLimit]
	}

	return notes, nil
}

// StudyMaterials returns the materials of every session the student
// booked.
func (s *StudentDashboardService) StudyMaterials(ctx context.Context, email string) ([]*models.Material, error) {
	bookings, err := s.bookingsFor(ctx, email)
	if err != nil {
		return nil, err
	}

	materials := []*models.Material{}
	for _, booking := range bookings {
		sessionMaterials, err := s.materials.GetBySessionID(ctx, booking.SessionID)
		if err != nil {
			return nil, err
		}
		materials = append(materials, sessionMaterials...)
	}

	return materials, nil
}

func (s *StudentDashboardService) load(ctx context.Context, email string) ([]*models.BookedSession, []*models.Note, error) {
	bookings, err := s.bookingsFor(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	notes, err := s.notes.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	return bookings, notes, nil
}

func (s *StudentDashboardService) bookingsFor(ctx context.Context, email string) ([]*models.BookedSession, error) {
	if email == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}
	return s.bookings.GetByStudentEmail(ctx, email)
}

type sessionClass int

const (
	classPast sessionClass = iota
	classOngoing
	classUpcoming
	classUndated
)

func classify(b *models.BookedSession, now time.Time) sessionClass {
	if b.ClassStartDate == nil || b.ClassEndDate == nil {
		return classUndated
	}
	switch {
	case now.Before(*b.ClassStartDate):
		return classUpcoming
	case now.After(*b.ClassEndDate):
		return classPast
	default:
		return classOngoing
	}
}

// progressPercent is elapsed class time as a percentage, clamped to
// [0, 100].
func progressPercent(start, end, now time.Time) int {
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(start)
	pct := int(math.Round(float64(elapsed) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func startProximity(start, now time.Time) (priority, dueText string) {
	until := start.Sub(now)
	switch {
	case until <= 24*time.Hour:
		if start.YearDay() == now.YearDay() && start.Year() == now.Year() {
			return "high", "Today"
		}
		return "high", "Tomorrow"
	case until <= 72*time.Hour:
		return "medium", fmt.Sprintf("In %d days", int(math.Ceil(until.Hours()/24)))
	default:
		return "low", start.Format("Jan 2")
	}
}
