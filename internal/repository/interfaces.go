package repository

import (
	"context"

	"github.com/studyhive/studyhive-api/internal/models"
)

// UserStore defines user data access
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Search(ctx context.Context, query string) ([]*models.User, error)
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	GetByRole(ctx context.Context, role string) ([]*models.User, error)
}

// SessionStore defines session data access
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetAll(ctx context.Context) ([]*models.Session, error)
	GetApproved(ctx context.Context, limit int) ([]*models.Session, error)
	GetByTutorEmail(ctx context.Context, email string) ([]*models.Session, error)
	GetByTutorEmailAndStatus(ctx context.Context, email, status string) ([]*models.Session, error)
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, fields map[string]interface{}) (*models.Session, error)
	Update(ctx context.Context, id string, req *models.UpdateSessionRequest) (*models.Session, error)
	DeleteCascade(ctx context.Context, id string) error
}

// MaterialStore defines study material data access
type MaterialStore interface {
	Create(ctx context.Context, material *models.Material) (*models.Material, error)
	GetByID(ctx context.Context, id string) (*models.Material, error)
	GetAll(ctx context.Context) ([]*models.Material, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*models.Material, error)
	GetByTutorEmail(ctx context.Context, email string) ([]*models.Material, error)
	Update(ctx context.Context, id string, req *models.UpdateMaterialRequest) (*models.Material, error)
	SetImageURL(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
}

// BookingStore defines booked session data access
type BookingStore interface {
	Create(ctx context.Context, booking *models.BookedSession) (*models.BookedSession, error)
	CreateWithPayment(ctx context.Context, booking *models.BookedSession, payment *models.Payment) (*models.BookedSession, error)
	GetByID(ctx context.Context, id string) (*models.BookedSession, error)
	GetByStudentEmail(ctx context.Context, email string) ([]*models.BookedSession, error)
	GetByTutorEmail(ctx context.Context, email string) ([]*models.BookedSession, error)
	Exists(ctx context.Context, sessionID, studentEmail string) (bool, error)
	CountBySessionID(ctx context.Context, sessionID string) (int64, error)
}

// ReviewStore defines review data access
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*models.Review, error)
	GetByStudentEmail(ctx context.Context, email string) ([]*models.Review, error)
	Exists(ctx context.Context, sessionID, studentEmail string) (bool, error)
	Update(ctx context.Context, id string, req *models.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

// NoteStore defines note data access
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	GetByEmail(ctx context.Context, email string) ([]*models.Note, error)
	Update(ctx context.Context, id string, req *models.UpdateNoteRequest) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

// PaymentStore defines payment data access
type PaymentStore interface {
	GetByStudentEmail(ctx context.Context, email string) ([]*models.Payment, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Payment, error)
}

// StatsStore defines cross-table reporting aggregates
type StatsStore interface {
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	RecentSessions(ctx context.Context, limit int) ([]*models.Session, error)
	RecentBookings(ctx context.Context, limit int) ([]*models.BookedSession, error)
	TutorAggregates(ctx context.Context, tutorEmail string) (students int64, hours float64, earnings float64, err error)
}
