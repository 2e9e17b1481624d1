package services

import (
	"context"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/metrics"
	"go.uber.org/zap"
)

// PaymentService creates payment intents for paid session checkouts
type PaymentService struct {
	payments PaymentProvider
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(payments PaymentProvider) *PaymentService {
	return &PaymentService{
		payments: payments,
	}
}

// CreateIntent creates a payment intent for the given price and returns
// the client secret the frontend confirms the card payment with.
// Request validation guarantees price >= 1.
func (s *PaymentService) CreateIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.CreatePaymentIntentResponse, error) {
	intent, err := s.payments.CreatePaymentIntent(ctx, amountCents(req.Price))
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("create", "error").Inc()
		logger.Error("Failed to create payment intent",
			zap.Float64("price", req.Price),
			zap.Error(err))
		return nil, err
	}

	metrics.PaymentIntents.WithLabelValues("create", "success").Inc()
	logger.Info("Payment intent created",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount_cents", intent.Amount))

	return &models.CreatePaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
	}, nil
}
