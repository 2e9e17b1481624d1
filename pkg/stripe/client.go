package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/studyhive/studyhive-api/pkg/circuitbreaker"
	"github.com/studyhive/studyhive-api/pkg/httpclient"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/metrics"
	"github.com/studyhive/studyhive-api/pkg/retry"
	"go.uber.org/zap"
)

// StatusSucceeded is the terminal payment intent status the booking flow
// requires before it records anything.
const StatusSucceeded = "succeeded"

var (
	ErrIntentNotFound = errors.New("payment intent not found")
)

// PaymentIntent is the subset of Stripe's payment intent object the
// backend reads. Amount is in the smallest currency unit (cents).
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the Stripe payment intents API.
// All calls go through a circuit breaker; retrieval is also retried
// (reads are idempotent, creation carries an idempotency key).
type Client struct {
	secretKey  string
	baseURL    string
	currency   string
	httpClient httpclient.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new Stripe API client
func NewClient(secretKey, baseURL, currency string, httpClient httpclient.Client) *Client {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	if currency == "" {
		currency = "usd"
	}

	return &Client{
		secretKey:  secretKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		currency:   currency,
		httpClient: httpClient,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("stripe")),
	}
}

// CreatePaymentIntent creates a card payment intent for the given amount
// in cents and returns it with its client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64) (*PaymentIntent, error) {
	start := time.Now()
	operation := "createPaymentIntent"

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", c.currency)
	form.Set("payment_method_types[]", "card")

	// One idempotency key per create call; a transport-level retry by the
	// breaker's caller can never double-charge.
	idempotencyKey := uuid.NewString()

	intent, err := circuitbreaker.Execute(c.breaker, func() (*PaymentIntent, error) {
		return c.post(ctx, "/v1/payment_intents", form, idempotencyKey)
	})

	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.StripeRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StripeRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "stripe", operation, "error", duration, zap.Error(err))
		return nil, circuitbreaker.FormatError("stripe", err)
	}

	metrics.StripeRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StripeRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "stripe", operation, "success", duration,
		zap.String("intent_id", intent.ID),
		zap.Int64("amount_cents", amountCents))

	return intent, nil
}

// RetrievePaymentIntent fetches a payment intent by id so the booking
// flow can verify its status.
func (c *Client) RetrievePaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	start := time.Now()
	operation := "retrievePaymentIntent"

	retryCfg := retry.StripeConfig()
	retryCfg.RetryableErrors = func(err error) bool {
		// A missing intent won't appear on retry
		return !errors.Is(err, ErrIntentNotFound)
	}

	intent, err := retry.DoWithResult(ctx, retryCfg, operation, func() (*PaymentIntent, error) {
		return circuitbreaker.Execute(c.breaker, func() (*PaymentIntent, error) {
			return c.get(ctx, "/v1/payment_intents/"+url.PathEscape(intentID))
		})
	})

	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.StripeRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StripeRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "stripe", operation, "error", duration,
			zap.String("intent_id", intentID),
			zap.Error(err))
		return nil, circuitbreaker.FormatError("stripe", err)
	}

	metrics.StripeRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StripeRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "stripe", operation, "success", duration,
		zap.String("intent_id", intentID),
		zap.String("intent_status", intent.Status))

	return intent, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, idempotencyKey string) (*PaymentIntent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	return c.send(req)
}

func (c *Client) get(ctx context.Context, path string) (*PaymentIntent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.send(req)
}

func (c *Client) send(req *http.Request) (*PaymentIntent, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrIntentNotFound
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe API error: status %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode stripe response: %w", err)
	}

	return &intent, nil
}
