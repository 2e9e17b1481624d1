package models

import "time"

// AdminStats is the body of GET /admin/stats
type AdminStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalStudents    int64   `json:"totalStudents"`
	TotalTutors      int64   `json:"totalTutors"`
	TotalAdmins      int64   `json:"totalAdmins"`
	TotalSessions    int64   `json:"totalSessions"`
	PendingSessions  int64   `json:"pendingSessions"`
	ApprovedSessions int64   `json:"approvedSessions"`
	RejectedSessions int64   `json:"rejectedSessions"`
	TotalBookings    int64   `json:"totalBookings"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// Activity is one entry in GET /admin/recent-activities
type Activity struct {
	Type      string    `json:"type"` // session | booking | payment
	Title     string    `json:"title"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// StudentDashboardStats is the body of GET /student/dashboard-stats
type StudentDashboardStats struct {
	EnrolledSessions int64   `json:"enrolledSessions"`
	OngoingSessions  int64   `json:"ongoingSessions"`
	UpcomingSessions int64   `json:"upcomingSessions"`
	TotalNotes       int64   `json:"totalNotes"`
	HoursLearned     float64 `json:"hoursLearned"`
}

// OngoingSession is an in-progress booking with an elapsed-time
// progress percentage.
type OngoingSession struct {
	BookedSession
	Progress int `json:"progress"` // 0-100
}

// UpcomingSession is a future booking with a start-proximity priority.
type UpcomingSession struct {
	BookedSession
	Priority string `json:"priority"` // high | medium | low
	DueText  string `json:"dueText"`
}

// PerformanceEntry is one row of GET /student/recent-performance
type PerformanceEntry struct {
	SessionID    string    `json:"sessionId"`
	SessionTitle string    `json:"sessionTitle"`
	Rating       float64   `json:"rating"`
	Grade        string    `json:"grade"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TutorStats is the body of GET /api/tutor/stats. Growth figures are
// placeholders until per-period aggregates exist; the flag tells
// clients not to chart them as real data.
type TutorStats struct {
	TotalStudents       int64   `json:"totalStudents"`
	TotalCourses        int64   `json:"totalCourses"`
	TotalHours          float64 `json:"totalHours"`
	TotalEarnings       float64 `json:"totalEarnings"`
	StudentGrowth       float64 `json:"studentGrowth"`
	CourseGrowth        float64 `json:"courseGrowth"`
	HoursGrowth         float64 `json:"hoursGrowth"`
	EarningsGrowth      float64 `json:"earningsGrowth"`
	GrowthIsPlaceholder bool    `json:"growthIsPlaceholder"`
}

// TutorUpcomingSession is one row of GET /api/tutor/upcoming-sessions
type TutorUpcomingSession struct {
	Session
	BookingsCount int64 `json:"bookingsCount"`
}

// RecentStudent is one row of GET /api/tutor/recent-students
type RecentStudent struct {
	StudentEmail string    `json:"studentEmail"`
	StudentName  string    `json:"studentName"`
	SessionTitle string    `json:"sessionTitle"`
	BookingDate  time.Time `json:"bookingDate"`
}
