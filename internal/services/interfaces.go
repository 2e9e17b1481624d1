package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive-api/pkg/stripe"

	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
)

// PaymentProvider is the slice of the Stripe client the services use
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64) (*stripe.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (*stripe.PaymentIntent, error)
}

// ImageStore is the slice of the object storage client the services use
type ImageStore interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// validateID rejects malformed uuids before they reach Postgres, where
// they would surface as a type error instead of a clean 400.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.InvalidInputError("id", "must be a valid uuid")
	}
	return nil
}
