package usecase

import (
	"context"
	"time"

	"brave-registration/internal/data/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	RoutingKeyRegistrationCreated = "registration.created"

	publishTimeout = 5 * time.Second
)

type RegistrationCreatedEvent struct {
	UID           string               `json:"uid"`
	CourseID      string               `json:"courseId"`
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	Paid          bool                 `json:"paid"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentID     *string              `json:"paymentID,omitempty"`
	TrxID         *string              `json:"trxID,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func newRegistrationCreatedEvent(reg *entity.Registration) RegistrationCreatedEvent {
	return RegistrationCreatedEvent{
		UID:           reg.UID,
		CourseID:      reg.CourseID,
		Name:          reg.Name,
		Phone:         reg.Phone,
		Paid:          reg.Paid,
		PaymentMethod: reg.PaymentMethod,
		Amount:        reg.Amount,
		PaymentID:     reg.PaymentID,
		TrxID:         reg.TrxID,
		CreatedAt:     reg.CreatedAt,
	}
}

// publishRegistrationCreated returns immediately. The event is sent in the
// background on a context detached from the request, so neither a slow broker
// nor a client disconnect holds up or drops it.
func publishRegistrationCreated(ctx context.Context, events EventPublisher, reg *entity.Registration, log *zap.Logger) {
	event := newRegistrationCreatedEvent(reg)
	ctx = context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		if err := events.PublishJSON(ctx, RoutingKeyRegistrationCreated, event); err != nil {
			log.Warn("Failed to publish registration event",
				zap.Error(err),
				zap.String("uid", event.UID),
			)
		}
	}()
}
