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
	"brave-registration/pkg/bkash"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

// Callback status values bKash appends to the callback URL.
const (
	CallbackStatusSuccess = "success"
	CallbackStatusFailure = "failure"
	CallbackStatusCancel  = "cancel"
)

// BkashService drives a gateway checkout from token grant to registration commit.
//
// Checkout runs INITIATED -> TOKEN_GRANTED -> PAYMENT_CREATED -> AWAITING_CALLBACK
// and leaves a PendingCheckout keyed by the gateway payment id. HandleCallback
// takes that entry out of the store before doing anything else, so every
// terminal state (CONFIRMED, CANCELED, FAILED) drops it and a replayed callback
// finds nothing to commit.
type BkashService interface {
	Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.BkashCheckoutResponse, error)
	HandleCallback(ctx context.Context, req *request.CallbackRequest) *response.CallbackResult
}

type bkashService struct {
	repo    *repository.Repository
	gateway PaymentGateway
	config  utils.BkashConfig
	events  EventPublisher
	metrics CheckoutRecorder
	now     func() time.Time
	log     *zap.Logger
}

func NewBkashService(
	repo *repository.Repository,
	gateway PaymentGateway,
	config utils.BkashConfig,
	log *zap.Logger,
	opts Options,
) BkashService {
	opts = opts.withDefaults()

	return &bkashService{
		repo:    repo,
		gateway: gateway,
		config:  config,
		events:  opts.Events,
		metrics: opts.Metrics,
		now:     opts.Now,
		log:     log.With(zap.String("service", "bkash")),
	}
}

func (s *bkashService) Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.BkashCheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("bKash checkout validation failed", zap.Any("errors", errs))
		return nil, apperror.NewValidationError(utils.FormatValidationErrors(errs), nil)
	}

	details := req.Details.ToEntity()

	existing, err := s.repo.Registration.FindByRegistrant(ctx, req.CourseID, details.Name, details.Phone)
	if err != nil {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewDuplicateRegistrationError(response.MessageAlreadyRegistered, nil)
	}
	s.logState(entity.CheckoutStateInitiated, zap.String("course_id", req.CourseID))

	// INITIATED -> TOKEN_GRANTED
	token, err := s.gateway.GrantToken(ctx)
	if err != nil {
		s.log.Error("Failed to grant bKash token", zap.Error(err), zap.String("course_id", req.CourseID))
		s.metrics.ObserveCheckout(string(entity.PaymentMethodBkash), string(entity.CheckoutStateFailed))
		return nil, err
	}
	s.logState(entity.CheckoutStateTokenGranted, zap.String("course_id", req.CourseID))

	// TOKEN_GRANTED -> PAYMENT_CREATED
	course, err := s.repo.Course.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("find course %s: %w", req.CourseID, err)
	}
	if course == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("course %s not found", req.CourseID))
	}

	invoice := utils.GenerateInvoiceNumber()
	payment, err := s.gateway.CreatePayment(ctx, token.IDToken, bkash.CreatePaymentRequest{
		Amount:        course.OfferPrice,
		Currency:      s.config.Currency,
		CallbackURL:   s.config.CallbackURL,
		InvoiceNumber: invoice,
	})
	if err != nil {
		s.log.Error("Failed to create bKash payment",
			zap.Error(err),
			zap.String("course_id", course.ID),
			zap.String("invoice", invoice),
		)
		s.metrics.ObserveCheckout(string(entity.PaymentMethodBkash), string(entity.CheckoutStateFailed))
		return nil, err
	}
	s.logState(entity.CheckoutStatePaymentCreated,
		zap.String("payment_id", payment.PaymentID),
		zap.String("invoice", invoice),
	)

	now := s.now()
	pending := &entity.PendingCheckout{
		PaymentID:     payment.PaymentID,
		InvoiceNumber: invoice,
		CourseID:      course.ID,
		Details:       details,
		Amount:        course.OfferPrice,
		Token:         token.IDToken,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.config.SessionTTL),
	}
	if err := s.repo.Pending.Save(ctx, pending); err != nil {
		return nil, apperror.NewPersistenceError("store pending checkout", err)
	}

	// PAYMENT_CREATED -> AWAITING_CALLBACK
	s.logState(entity.CheckoutStateAwaitingCallback,
		zap.String("payment_id", payment.PaymentID),
		zap.Time("expires_at", pending.ExpiresAt),
	)

	return &response.BkashCheckoutResponse{BkashURL: payment.BkashURL}, nil
}

func (s *bkashService) HandleCallback(ctx context.Context, req *request.CallbackRequest) *response.CallbackResult {
	switch req.Status {
	case CallbackStatusSuccess:
		return s.confirm(ctx, req.PaymentID)

	case CallbackStatusCancel:
		s.repo.Pending.Discard(ctx, req.PaymentID)
		return s.finish(entity.CheckoutStateCanceled, req.PaymentID)

	case CallbackStatusFailure:
		s.repo.Pending.Discard(ctx, req.PaymentID)
		return s.finish(entity.CheckoutStateFailed, req.PaymentID)

	default:
		s.log.Warn("Unknown callback status",
			zap.String("status", req.Status),
			zap.String("payment_id", req.PaymentID),
		)
		s.repo.Pending.Discard(ctx, req.PaymentID)
		return s.finish(entity.CheckoutStateFailed, req.PaymentID)
	}
}

func (s *bkashService) confirm(ctx context.Context, paymentID string) *response.CallbackResult {
	if paymentID == "" {
		s.log.Warn("Success callback without payment ID")
		return s.finish(entity.CheckoutStateFailed, paymentID)
	}

	pending, err := s.repo.Pending.Take(ctx, paymentID)
	if err != nil || pending == nil {
		s.log.Warn("No pending checkout for callback",
			zap.Error(err),
			zap.String("payment_id", paymentID),
		)
		return s.finish(entity.CheckoutStateFailed, paymentID)
	}

	// Once execute is sent the payment may be captured; a browser going away
	// must not abort the commit that follows.
	ctx = context.WithoutCancel(ctx)

	result, err := s.gateway.ExecutePayment(ctx, pending.Token, paymentID)
	if err != nil {
		s.log.Error("Failed to execute bKash payment",
			zap.Error(err),
			zap.String("payment_id", paymentID),
			zap.String("invoice", pending.InvoiceNumber),
		)
		return s.finish(entity.CheckoutStateFailed, paymentID)
	}
	if !result.Succeeded() {
		s.log.Warn("bKash payment not completed",
			zap.String("payment_id", paymentID),
			zap.String("status_code", result.StatusCode),
			zap.String("status_message", result.StatusMessage),
		)
		return s.finish(entity.CheckoutStateFailed, paymentID)
	}

	reg := entity.NewRegistration(pending.CourseID, pending.Details)
	reg.Paid = true
	reg.PaymentMethod = entity.PaymentMethodBkash
	reg.Amount = pending.Amount
	reg.PaymentID = &paymentID
	if result.TrxID != "" {
		trxID := result.TrxID
		reg.TrxID = &trxID
	}
	reg.CreatedAt = s.now()

	if err := commitRegistration(ctx, s.repo.Registration, reg, s.log); err != nil {
		s.log.Error("Payment captured but registration not saved",
			zap.Error(err),
			zap.String("payment_id", paymentID),
			zap.String("trx_id", result.TrxID),
			zap.String("invoice", pending.InvoiceNumber),
			zap.String("course_id", pending.CourseID),
			zap.String("phone", pending.Details.Phone),
		)
		s.metrics.ObserveCheckout(string(entity.PaymentMethodBkash), OutcomeFailedToPersist)
		return &response.CallbackResult{Status: response.CallbackFailedToPersist}
	}

	s.logState(entity.CheckoutStateConfirmed,
		zap.String("payment_id", paymentID),
		zap.String("trx_id", result.TrxID),
		zap.String("uid", reg.UID),
	)
	s.metrics.ObserveCheckout(string(entity.PaymentMethodBkash), string(entity.CheckoutStateConfirmed))
	publishRegistrationCreated(ctx, s.events, reg, s.log)

	return &response.CallbackResult{Status: response.CallbackSuccessful, UID: reg.UID}
}

func (s *bkashService) finish(state entity.CheckoutState, paymentID string) *response.CallbackResult {
	s.logState(state, zap.String("payment_id", paymentID))
	s.metrics.ObserveCheckout(string(entity.PaymentMethodBkash), string(state))

	if state == entity.CheckoutStateCanceled {
		return &response.CallbackResult{Status: response.CallbackCanceled}
	}
	return &response.CallbackResult{Status: response.CallbackFailed}
}

func (s *bkashService) logState(state entity.CheckoutState, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("state", string(state)),
		zap.Bool("terminal", state.Terminal()),
	}
	s.log.Info("Checkout state", append(base, fields...)...)
}
