package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"brave-registration/internal/data/entity"

	"go.uber.org/zap"
)

// PendingCheckoutRepository holds gateway checkouts between payment creation
// and the gateway callback. Entries live in process memory only.
type PendingCheckoutRepository interface {
	Save(ctx context.Context, pending *entity.PendingCheckout) error
	// Take removes and returns the entry; nil when absent or expired.
	Take(ctx context.Context, paymentID string) (*entity.PendingCheckout, error)
	Discard(ctx context.Context, paymentID string)
	Sweep(now time.Time) int
}

type MemoryPendingCheckoutRepository struct {
	mu      sync.Mutex
	entries map[string]*entity.PendingCheckout
	now     func() time.Time
	log     *zap.Logger
}

func NewPendingCheckoutRepository(log *zap.Logger) *MemoryPendingCheckoutRepository {
	return &MemoryPendingCheckoutRepository{
		entries: make(map[string]*entity.PendingCheckout),
		now:     time.Now,
		log:     log.With(zap.String("repository", "pending_checkout")),
	}
}

func (r *MemoryPendingCheckoutRepository) Save(ctx context.Context, pending *entity.PendingCheckout) error {
	if pending == nil || pending.PaymentID == "" {
		return errors.New("pending checkout without payment ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[pending.PaymentID]; exists {
		r.log.Warn("Replacing pending checkout", zap.String("payment_id", pending.PaymentID))
	}
	r.entries[pending.PaymentID] = pending

	return nil
}

func (r *MemoryPendingCheckoutRepository) Take(ctx context.Context, paymentID string) (*entity.PendingCheckout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, ok := r.entries[paymentID]
	if !ok {
		return nil, nil
	}
	delete(r.entries, paymentID)

	if pending.Expired(r.now()) {
		r.log.Info("Pending checkout expired before callback",
			zap.String("payment_id", paymentID),
			zap.String("invoice", pending.InvoiceNumber),
		)
		return nil, nil
	}

	return pending, nil
}

func (r *MemoryPendingCheckoutRepository) Discard(ctx context.Context, paymentID string) {
	r.mu.Lock()
	delete(r.entries, paymentID)
	r.mu.Unlock()
}

// Sweep drops every entry expired at now and reports how many were removed.
func (r *MemoryPendingCheckoutRepository) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, pending := range r.entries {
		if pending.Expired(now) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *MemoryPendingCheckoutRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// StartJanitor sweeps abandoned checkouts every interval until ctx is done.
func (r *MemoryPendingCheckoutRepository) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(r.now()); n > 0 {
					r.log.Info("Swept abandoned checkouts", zap.Int("count", n))
				}
			}
		}
	}()
}
