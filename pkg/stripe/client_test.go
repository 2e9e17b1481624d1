package stripe_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	mockHTTP := new(MockHTTPClient)
	client := stripe.NewClient("sk_test_123", "https://api.stripe.test", "usd", mockHTTP)

	mockHTTP.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost &&
			req.URL.String() == "https://api.stripe.test/v1/payment_intents" &&
			req.Header.Get("Authorization") == "Bearer sk_test_123" &&
			req.Header.Get("Idempotency-Key") != ""
	})).Return(jsonResponse(http.StatusOK, `{
		"id": "pi_123",
		"client_secret": "pi_123_secret_abc",
		"status": "requires_payment_method",
		"amount": 4999,
		"currency": "usd"
	}`), nil).Once()

	intent, err := client.CreatePaymentIntent(context.Background(), 4999)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(4999), intent.Amount)
	mockHTTP.AssertExpectations(t)
}

func TestClient_CreatePaymentIntent_APIError(t *testing.T) {
	mockHTTP := new(MockHTTPClient)
	client := stripe.NewClient("sk_test_123", "https://api.stripe.test", "usd", mockHTTP)

	mockHTTP.On("Do", mock.Anything).Return(jsonResponse(http.StatusPaymentRequired, `{
		"error": {"type": "card_error", "code": "card_declined", "message": "Your card was declined."}
	}`), nil).Once()

	intent, err := client.CreatePaymentIntent(context.Background(), 4999)
	assert.Nil(t, intent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestClient_RetrievePaymentIntent(t *testing.T) {
	mockHTTP := new(MockHTTPClient)
	client := stripe.NewClient("sk_test_123", "https://api.stripe.test", "usd", mockHTTP)

	mockHTTP.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet &&
			req.URL.String() == "https://api.stripe.test/v1/payment_intents/pi_123"
	})).Return(jsonResponse(http.StatusOK, `{
		"id": "pi_123",
		"status": "succeeded",
		"amount": 4999,
		"currency": "usd"
	}`), nil).Once()

	intent, err := client.RetrievePaymentIntent(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, stripe.StatusSucceeded, intent.Status)
	mockHTTP.AssertExpectations(t)
}

func TestClient_RetrievePaymentIntent_NotFound(t *testing.T) {
	mockHTTP := new(MockHTTPClient)
	client := stripe.NewClient("sk_test_123", "https://api.stripe.test", "usd", mockHTTP)

	// Not retried: a missing intent will not appear on a second attempt
	mockHTTP.On("Do", mock.Anything).Return(jsonResponse(http.StatusNotFound, `{}`), nil).Once()

	intent, err := client.RetrievePaymentIntent(context.Background(), "pi_missing")
	assert.Nil(t, intent)
	assert.ErrorIs(t, err, stripe.ErrIntentNotFound)
	mockHTTP.AssertExpectations(t)
}
