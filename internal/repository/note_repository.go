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

// NoteRepository handles note data access
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{
		pool: pool,
	}
}

const noteColumns = `id, email, title, content, created_at, updated_at`

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.Email, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new note
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	start := time.Now()

	query := `
		INSERT INTO notes (email, title, content)
		VALUES ($1, $2, $3)
		RETURNING ` + noteColumns

	created, err := scanNote(r.pool.QueryRow(ctx, query, note.Email, note.Title, note.Content))
	observe("notes.create", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return created, nil
}

// GetByID fetches a note by id
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	start := time.Now()

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	note, err := scanNote(r.pool.QueryRow(ctx, query, id))
	observe("notes.get_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("note")
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// GetByEmail fetches a student's notes, newest first
func (r *NoteRepository) GetByEmail(ctx context.Context, email string) ([]*models.Note, error) {
	start := time.Now()

	query := `SELECT ` + noteColumns + ` FROM notes WHERE email = $1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		observe("notes.get_by_email", start, err)
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			observe("notes.get_by_email", start, scanErr)
			return nil, fmt.Errorf("failed to scan note: %w", scanErr)
		}
		notes = append(notes, note)
	}

	observe("notes.get_by_email", start, rows.Err())
	return notes, rows.Err()
}

// Update applies a partial edit to a note
func (r *NoteRepository) Update(ctx context.Context, id string, req *models.UpdateNoteRequest) (*models.Note, error) {
	start := time.Now()

	setClauses := "updated_at = now()"
	args := []interface{}{id}

	if req.Title != nil {
		args = append(args, *req.Title)
		setClauses += fmt.Sprintf(", title = $%d", len(args))
	}
	if req.Content != nil {
		args = append(args, *req.Content)
		setClauses += fmt.Sprintf(", content = $%d", len(args))
	}

	query := fmt.Sprintf(`
		UPDATE notes SET %s
		WHERE id = $1
		RETURNING %s`, setClauses, noteColumns)

	note, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	observe("notes.update", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("note")
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	observe("notes.delete", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("note")
	}

	return nil
}

var _ NoteStore = (*NoteRepository)(nil)
