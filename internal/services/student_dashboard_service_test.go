package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newDashboardService(bookings *MockBookingStore, notes *MockNoteStore, reviews *MockReviewStore, sessions *MockSessionStore, materials *MockMaterialStore) *services.StudentDashboardService {
	return services.NewStudentDashboardService(bookings, notes, reviews, sessions, materials)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestStudentDashboardService_DashboardStats(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockNotes := new(MockNoteStore)
	service := newDashboardService(mockBookings, mockNotes, new(MockReviewStore), new(MockSessionStore), new(MockMaterialStore))
	ctx := context.Background()

	now := time.Now()
	bookings := []*models.BookedSession{
		{ // ongoing
			SessionID:      testSessionID,
			ClassStartDate: timePtr(now.Add(-24 * time.Hour)),
			ClassEndDate:   timePtr(now.Add(24 * time.Hour)),
			DurationHours:  10,
		},
		{ // upcoming
			SessionID:      testBookingID,
			ClassStartDate: timePtr(now.Add(48 * time.Hour)),
			ClassEndDate:   timePtr(now.Add(96 * time.Hour)),
			DurationHours:  5,
		},
		{ // past
			SessionID:      testReviewID,
			ClassStartDate: timePtr(now.Add(-96 * time.Hour)),
			ClassEndDate:   timePtr(now.Add(-48 * time.Hour)),
			DurationHours:  2,
		},
	}
	notes := []*models.Note{{ID: "n1"}, {ID: "n2"}}

	mockBookings.On("GetByStudentEmail", ctx, "student@example.com").Return(bookings, nil).Once()
	mockNotes.On("GetByEmail", ctx, "student@example.com").Return(notes, nil).Once()

	stats, err := service.DashboardStats(ctx, "student@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.EnrolledSessions)
	assert.Equal(t, int64(1), stats.OngoingSessions)
	assert.Equal(t, int64(1), stats.UpcomingSessions)
	assert.Equal(t, int64(2), stats.TotalNotes)
	assert.Equal(t, float64(17), stats.HoursLearned)
}

func TestStudentDashboardService_OngoingSessions_Progress(t *testing.T) {
	mockBookings := new(MockBookingStore)
	service := newDashboardService(mockBookings, new(MockNoteStore), new(MockReviewStore), new(MockSessionStore), new(MockMaterialStore))
	ctx := context.Background()

	now := time.Now()
	bookings := []*models.BookedSession{
		{
			SessionID:      testSessionID,
			ClassStartDate: timePtr(now.Add(-25 * time.Hour)),
			ClassEndDate:   timePtr(now.Add(75 * time.Hour)),
		},
		{ // undated, excluded
			SessionID: testBookingID,
		},
	}
	mockBookings.On("GetByStudentEmail", ctx, "student@example.com").Return(bookings, nil).Once()

	ongoing, err := service.OngoingSessions(ctx, "student@example.com")
	assert.NoError(t, err)
	assert.Len(t, ongoing, 1)
	assert.Equal(t, 25, ongoing[0].Progress)
}

func TestStudentDashboardService_UpcomingSessions_PriorityAndOrder(t *testing.T) {
	mockBookings := new(MockBookingStore)
	service := newDashboardService(mockBookings, new(MockNoteStore), new(MockReviewStore), new(MockSessionStore), new(MockMaterialStore))
	ctx := context.Background()

	now := time.Now()
	soon := now.Add(10 * time.Hour)
	later := now.Add(50 * time.Hour)
	farOff := now.Add(30 * 24 * time.Hour)

	bookings := []*models.BookedSession{
		{SessionID: "far", ClassStartDate: timePtr(farOff), ClassEndDate: timePtr(farOff.Add(time.Hour))},
		{SessionID: "soon", ClassStartDate: timePtr(soon), ClassEndDate: timePtr(soon.Add(time.Hour))},
		{SessionID: "later", ClassStartDate: timePtr(later), ClassEndDate: timePtr(later.Add(time.Hour))},
	}
	mockBookings.On("GetByStudentEmail", ctx, "student@example.com").Return(bookings, nil).Once()

	upcoming, err := service.UpcomingSessions(ctx, "student@example.com")
	assert.NoError(t, err)
	assert.Len(t, upcoming, 3)

	// Sorted by start date, nearest first
	assert.Equal(t, "soon", upcoming[0].SessionID)
	assert.Equal(t, "later", upcoming[1].SessionID)
	assert.Equal(t, "far", upcoming[2].SessionID)

	assert.Equal(t, "high", upcoming[0].Priority)
	assert.Equal(t, "medium", upcoming[1].Priority)
	assert.Equal(t, "low", upcoming[2].Priority)
}

func TestStudentDashboardService_RecentPerformance(t *testing.T) {
	mockReviews := new(MockReviewStore)
	mockSessions := new(MockSessionStore)
	service := newDashboardService(new(MockBookingStore), new(MockNoteStore), mockReviews, mockSessions, new(MockMaterialStore))
	ctx := context.Background()

	reviews := []*models.Review{
		{ID: testReviewID, SessionID: testSessionID, Rating: 4.5},
	}
	mockReviews.On("GetByStudentEmail", ctx, "student@example.com").Return(reviews, nil).Once()
	mockSessions.On("GetByID", ctx, testSessionID).Return(&models.Session{ID: testSessionID, Title: "Algebra Basics"}, nil).Once()

	entries, err := service.RecentPerformance(ctx, "student@example.com")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Algebra Basics", entries[0].SessionTitle)
	assert.Equal(t, "A", entries[0].Grade)
}

func TestStudentDashboardService_StudyMaterials(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockMaterials := new(MockMaterialStore)
	service := newDashboardService(mockBookings, new(MockNoteStore), new(MockReviewStore), new(MockSessionStore), mockMaterials)
	ctx := context.Background()

	bookings := []*models.BookedSession{{SessionID: testSessionID}}
	materials := []*models.Material{{ID: "m1", SessionID: testSessionID}}

	mockBookings.On("GetByStudentEmail", ctx, "student@example.com").Return(bookings, nil).Once()
	mockMaterials.On("GetBySessionID", ctx, testSessionID).Return(materials, nil).Once()

	got, err := service.StudyMaterials(ctx, "student@example.com")
	assert.NoError(t, err)
	assert.Equal(t, materials, got)
}

func TestStudentDashboardService_RequiresEmail(t *testing.T) {
	service := newDashboardService(new(MockBookingStore), new(MockNoteStore), new(MockReviewStore), new(MockSessionStore), new(MockMaterialStore))

	_, err := service.DashboardStats(context.Background(), "")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = service.RecentNotes(context.Background(), "")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
