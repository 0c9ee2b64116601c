package usecase

import (
	"context"
	"fmt"
	"time"

	"brave-registration/internal/data/entity"
	"brave-registration/internal/data/repository"
	"brave-registration/internal/dto/request"
	"brave-registration/internal/dto/response"
	"brave-registration/pkg/apperror"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

// CheckoutService registers students paying in cash at the venue.
type CheckoutService interface {
	PhysicalCheckout(ctx context.Context, req *request.CheckoutRequest) (*response.PhysicalCheckoutResponse, error)
}

type checkoutService struct {
	repo    *repository.Repository
	events  EventPublisher
	metrics CheckoutRecorder
	now     func() time.Time
	log     *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, log *zap.Logger, opts Options) CheckoutService {
	opts = opts.withDefaults()

	return &checkoutService{
		repo:    repo,
		events:  opts.Events,
		metrics: opts.Metrics,
		now:     opts.Now,
		log:     log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) PhysicalCheckout(ctx context.Context, req *request.CheckoutRequest) (*response.PhysicalCheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Physical checkout validation failed", zap.Any("errors", errs))
		return nil, apperror.NewValidationError(utils.FormatValidationErrors(errs), nil)
	}

	details := req.Details.ToEntity()

	existing, err := s.repo.Registration.FindByRegistrant(ctx, req.CourseID, details.Name, details.Phone)
	if err != nil {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	if existing != nil {
		s.log.Info("Registrant already registered",
			zap.String("course_id", req.CourseID),
			zap.String("uid", existing.UID),
		)
		return alreadyRegistered(), nil
	}

	course, err := s.repo.Course.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("find course %s: %w", req.CourseID, err)
	}
	if course == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("course %s not found", req.CourseID))
	}

	reg := entity.NewRegistration(course.ID, details)
	reg.Paid = course.IsFree()
	reg.PaymentMethod = entity.PaymentMethodPhysical
	reg.Amount = course.OfferPrice
	reg.CreatedAt = s.now()

	if err := commitRegistration(ctx, s.repo.Registration, reg, s.log); err != nil {
		// Lost the race against an identical submission; the other one is recorded.
		if apperror.Is(err, apperror.ReasonDuplicateRegistration) {
			return alreadyRegistered(), nil
		}
		return nil, err
	}

	s.log.Info("Physical registration created",
		zap.String("uid", reg.UID),
		zap.String("course_id", reg.CourseID),
		zap.Bool("paid", reg.Paid),
	)
	s.metrics.ObserveCheckout(string(entity.PaymentMethodPhysical), string(entity.CheckoutStateConfirmed))
	publishRegistrationCreated(ctx, s.events, reg, s.log)

	return &response.PhysicalCheckoutResponse{
		Message: response.MessageSuccess,
		UID:     &reg.UID,
		Paid:    &reg.Paid,
	}, nil
}

func alreadyRegistered() *response.PhysicalCheckoutResponse {
	return &response.PhysicalCheckoutResponse{Message: response.MessageAlreadyRegistered}
}
