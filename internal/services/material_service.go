package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"go.uber.org/zap"
)

// MaterialService handles study materials and their cover images
type MaterialService struct {
	materials repository.MaterialStore
	sessions  repository.SessionStore
	images    ImageStore
}

// NewMaterialService creates a new material service instance. images
// may be nil when object storage is not configured; uploads then fail
// with a clear error instead of a panic.
func NewMaterialService(materials repository.MaterialStore, sessions repository.SessionStore, images ImageStore) *MaterialService {
	return &MaterialService{
		materials: materials,
		sessions:  sessions,
		images:    images,
	}
}

// Create attaches a material to one of the tutor's sessions. The
// session must exist and belong to the calling tutor.
func (s *MaterialService) Create(ctx context.Context, tutorEmail string, req *models.CreateMaterialRequest) (*models.Material, error) {
	if err := validateID(req.SessionID); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.TutorEmail != tutorEmail {
		return nil, apperrors.AccessDeniedError("session belongs to another tutor")
	}

	material, err := s.materials.Create(ctx, &models.Material{
		SessionID:  req.SessionID,
		TutorEmail: tutorEmail,
		Title:      req.Title,
		Link:       req.Link,
	})
	if err != nil {
		logger.Error("Failed to create material",
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Material created",
		zap.String("material_id", material.ID),
		zap.String("session_id", material.SessionID))

	return material, nil
}

// List returns materials filtered by session id, tutor email, or both.
// At least one filter is required; an unfiltered listing is admin-only
// and lives on GetAll.
func (s *MaterialService) List(ctx context.Context, sessionID, email string) ([]*models.Material, error) {
	switch {
	case sessionID != "":
		if err := validateID(sessionID); err != nil {
			return nil, err
		}
		materials, err := s.materials.GetBySessionID(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if email != "" {
			filtered := materials[:0]
			for _, m := range materials {
				if strings.EqualFold(m.TutorEmail, email) {
					filtered = append(filtered, m)
				}
			}
			materials = filtered
		}
		return materials, nil
	case email != "":
		return s.materials.GetByTutorEmail(ctx, email)
	default:
		return nil, apperrors.InvalidInputError("filter", "sessionId or email is required")
	}
}

// GetAll returns every material (admin listing)
func (s *MaterialService) GetAll(ctx context.Context) ([]*models.Material, error) {
	return s.materials.GetAll(ctx)
}

// Update edits a material; only the owning tutor may edit
func (s *MaterialService) Update(ctx context.Context, id, tutorEmail string, req *models.UpdateMaterialRequest) (*models.Material, error) {
	if err := s.requireOwner(ctx, id, tutorEmail); err != nil {
		return nil, err
	}
	return s.materials.Update(ctx, id, req)
}

// Delete removes a material; only the owning tutor may delete
func (s *MaterialService) Delete(ctx context.Context, id, tutorEmail string) error {
	if err := s.requireOwner(ctx, id, tutorEmail); err != nil {
		return err
	}
	return s.materials.Delete(ctx, id)
}

// AdminDelete removes a material without an ownership check
func (s *MaterialService) AdminDelete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.materials.Delete(ctx, id)
}

// UploadImage stores a base64 cover image in object storage and saves
// its public URL on the material.
func (s *MaterialService) UploadImage(ctx context.Context, id, tutorEmail string, req *models.UploadMaterialImageRequest) (string, error) {
	if s.images == nil {
		return "", apperrors.InternalError("object storage is not configured")
	}

	if err := s.requireOwner(ctx, id, tutorEmail); err != nil {
		return "", err
	}

	if err := s.images.ValidateImageType(req.ContentType); err != nil {
		return "", apperrors.InvalidInputError("contentType", err.Error())
	}
	if err := s.images.ValidateImageSize(req.Image); err != nil {
		return "", apperrors.InvalidInputError("image", err.Error())
	}

	ext := strings.TrimPrefix(strings.ToLower(req.ContentType), "image/")
	key := fmt.Sprintf("materials/%s/%d.%s", id, time.Now().Unix(), ext)

	url, err := s.images.UploadImage(ctx, req.Image, key, req.ContentType)
	if err != nil {
		logger.Error("Material image upload failed",
			zap.String("material_id", id),
			zap.Error(err))
		return "", err
	}

	if err := s.materials.SetImageURL(ctx, id, url); err != nil {
		return "", err
	}

	logger.Info("Material image uploaded",
		zap.String("material_id", id),
		zap.String("url", url))

	return url, nil
}

func (s *MaterialService) requireOwner(ctx context.Context, id, tutorEmail string) error {
	if err := validateID(id); err != nil {
		return err
	}

	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(material.TutorEmail, tutorEmail) {
		return apperrors.AccessDeniedError("material belongs to another tutor")
	}

	return nil
}
