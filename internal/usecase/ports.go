package usecase

import (
	"context"

	"brave-registration/pkg/bkash"
)

// PaymentGateway is the subset of the bKash client the checkout flow needs.
type PaymentGateway interface {
	GrantToken(ctx context.Context) (*bkash.AccessToken, error)
	CreatePayment(ctx context.Context, token string, req bkash.CreatePaymentRequest) (*bkash.CreatePaymentResponse, error)
	ExecutePayment(ctx context.Context, token, paymentID string) (*bkash.ExecutePaymentResponse, error)
}

// EventPublisher receives committed registrations. Failures are logged and ignored.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// CheckoutRecorder counts checkout outcomes.
type CheckoutRecorder interface {
	ObserveCheckout(method, outcome string)
}

// OutcomeFailedToPersist marks a captured payment whose registration was not stored.
const OutcomeFailedToPersist = "FAILED_TO_PERSIST"

type noopPublisher struct{}

func (noopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type noopRecorder struct{}

func (noopRecorder) ObserveCheckout(string, string) {}
