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

// MaterialRepository handles study material data access
type MaterialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{
		pool: pool,
	}
}

const materialColumns = `id, session_id, tutor_email, title, link, image_url, created_at, updated_at`

func scanMaterial(row pgx.Row) (*models.Material, error) {
	var m models.Material
	err := row.Scan(&m.ID, &m.SessionID, &m.TutorEmail, &m.Title, &m.Link,
		&m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new material
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) (*models.Material, error) {
	start := time.Now()

	query := `
		INSERT INTO materials (session_id, tutor_email, title, link, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + materialColumns

	created, err := scanMaterial(r.pool.QueryRow(ctx, query,
		material.SessionID, material.TutorEmail, material.Title, material.Link, material.ImageURL))
	observe("materials.create", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	return created, nil
}

// GetByID fetches a material by id
func (r *MaterialRepository) GetByID(ctx context.Context, id string) (*models.Material, error) {
	start := time.Now()

	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`

	material, err := scanMaterial(r.pool.QueryRow(ctx, query, id))
	observe("materials.get_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("material")
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	return material, nil
}

// GetAll fetches all materials, newest first
func (r *MaterialRepository) GetAll(ctx context.Context) ([]*models.Material, error) {
	start := time.Now()

	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY created_at DESC`

	materials, err := r.queryMaterials(ctx, query)
	observe("materials.get_all", start, err)
	return materials, err
}

// GetBySessionID fetches materials attached to a session
func (r *MaterialRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Material, error) {
	start := time.Now()

	query := `SELECT ` + materialColumns + ` FROM materials WHERE session_id = $1 ORDER BY created_at DESC`

	materials, err := r.queryMaterials(ctx, query, sessionID)
	observe("materials.get_by_session", start, err)
	return materials, err
}

// GetByTutorEmail fetches a tutor's materials
func (r *MaterialRepository) GetByTutorEmail(ctx context.Context, email string) ([]*models.Material, error) {
	start := time.Now()

	query := `SELECT ` + materialColumns + ` FROM materials WHERE tutor_email = $1 ORDER BY created_at DESC`

	materials, err := r.queryMaterials(ctx, query, email)
	observe("materials.get_by_tutor", start, err)
	return materials, err
}

// Update applies a partial edit to a material
func (r *MaterialRepository) Update(ctx context.Context, id string, req *models.UpdateMaterialRequest) (*models.Material, error) {
	start := time.Now()

	setClauses := "updated_at = now()"
	args := []interface{}{id}

	if req.Title != nil {
		args = append(args, *req.Title)
		setClauses += fmt.Sprintf(", title = $%d", len(args))
	}
	if req.Link != nil {
		args = append(args, *req.Link)
		setClauses += fmt.Sprintf(", link = $%d", len(args))
	}

	query := fmt.Sprintf(`
		UPDATE materials SET %s
		WHERE id = $1
		RETURNING %s`, setClauses, materialColumns)

	material, err := scanMaterial(r.pool.QueryRow(ctx, query, args...))
	observe("materials.update", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("material")
		}
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	return material, nil
}

// SetImageURL stores the uploaded cover image URL
func (r *MaterialRepository) SetImageURL(ctx context.Context, id, imageURL string) error {
	start := time.Now()

	query := `UPDATE materials SET image_url = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, imageURL)
	observe("materials.set_image_url", start, err)
	if err != nil {
		return fmt.Errorf("failed to set material image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("material")
	}

	return nil
}

// Delete removes a material
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	observe("materials.delete", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("material")
	}

	return nil
}

func (r *MaterialRepository) queryMaterials(ctx context.Context, query string, args ...interface{}) ([]*models.Material, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	materials := []*models.Material{}
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, material)
	}

	return materials, rows.Err()
}

var _ MaterialStore = (*MaterialRepository)(nil)
