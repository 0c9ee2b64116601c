package usecase

import (
	"time"

	"brave-registration/internal/data/repository"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Listing  ListingService
	Checkout CheckoutService
	Bkash    BkashService
}

// Options carries the optional collaborators; zero values fall back to no-ops.
type Options struct {
	Events  EventPublisher
	Metrics CheckoutRecorder
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Events == nil {
		o.Events = noopPublisher{}
	}
	if o.Metrics == nil {
		o.Metrics = noopRecorder{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func NewService(repo *repository.Repository, gateway PaymentGateway, config *utils.Config, log *zap.Logger, opts Options) *Service {
	opts = opts.withDefaults()

	return &Service{
		Listing:  NewListingService(repo, log),
		Checkout: NewCheckoutService(repo, log, opts),
		Bkash:    NewBkashService(repo, gateway, config.Bkash, log, opts),
	}
}
