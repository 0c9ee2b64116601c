package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutState string

const (
	CheckoutStateInitiated        CheckoutState = "INITIATED"
	CheckoutStateTokenGranted     CheckoutState = "TOKEN_GRANTED"
	CheckoutStatePaymentCreated   CheckoutState = "PAYMENT_CREATED"
	CheckoutStateAwaitingCallback CheckoutState = "AWAITING_CALLBACK"
	CheckoutStateConfirmed        CheckoutState = "CONFIRMED"
	CheckoutStateCanceled         CheckoutState = "CANCELED"
	CheckoutStateFailed           CheckoutState = "FAILED"
)

func (s CheckoutState) Terminal() bool {
	return s == CheckoutStateConfirmed || s == CheckoutStateCanceled || s == CheckoutStateFailed
}

// PendingCheckout is the in-flight state of one gateway checkout, keyed by
// the gateway payment id that comes back on the callback.
type PendingCheckout struct {
	PaymentID     string
	InvoiceNumber string
	CourseID      string
	Details       RegistrantDetails
	Amount        decimal.Decimal
	Token         string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

func (p *PendingCheckout) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
