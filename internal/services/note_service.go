package services

import (
	"context"
	"strings"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
)

// NoteService handles students' personal study notes
type NoteService struct {
	notes repository.NoteStore
}

// NewNoteService creates a new note service instance
func NewNoteService(notes repository.NoteStore) *NoteService {
	return &NoteService{
		notes: notes,
	}
}

// Create saves a new note
func (s *NoteService) Create(ctx context.Context, req *models.CreateNoteRequest) (*models.Note, error) {
	return s.notes.Create(ctx, &models.Note{
		Email:   strings.ToLower(req.Email),
		Title:   req.Title,
		Content: req.Content,
	})
}

// List returns a student's notes
func (s *NoteService) List(ctx context.Context, email string) ([]*models.Note, error) {
	if email == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}
	return s.notes.GetByEmail(ctx, email)
}

// Update edits a note; only the owner may edit
func (s *NoteService) Update(ctx context.Context, id, email string, req *models.UpdateNoteRequest) (*models.Note, error) {
	if err := s.requireOwner(ctx, id, email); err != nil {
		return nil, err
	}
	return s.notes.Update(ctx, id, req)
}

// Delete removes a note; only the owner may delete
func (s *NoteService) Delete(ctx context.Context, id, email string) error {
	if err := s.requireOwner(ctx, id, email); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}

func (s *NoteService) requireOwner(ctx context.Context, id, email string) error {
	if err := validateID(id); err != nil {
		return err
	}

	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(note.Email, email) {
		return apperrors.AccessDeniedError("note belongs to another student")
	}

	return nil
}
