package usecase

import (
	"context"
	"sync"
	"time"

	"brave-registration/internal/data/entity"
	"brave-registration/internal/data/repository"
	"brave-registration/pkg/apperror"
	"brave-registration/pkg/bkash"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var noopLogger = zap.NewNop()

type mockCourseRepo struct {
	FindFunc     func(ctx context.Context, filter entity.CourseFilter) ([]*entity.Course, error)
	FindByIDFunc func(ctx context.Context, id string) (*entity.Course, error)
}

func (m *mockCourseRepo) Find(ctx context.Context, filter entity.CourseFilter) ([]*entity.Course, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockScheduleRepo struct {
	FindFunc func(ctx context.Context, filter entity.ScheduleFilter) ([]*entity.ScheduleEntry, error)
}

func (m *mockScheduleRepo) Find(ctx context.Context, filter entity.ScheduleFilter) ([]*entity.ScheduleEntry, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return nil, nil
}

// fakeRegistrationRepo behaves like the table's unique uid and (course, name, phone)
// constraints. The first UIDConflicts inserts fail as if their uid were taken.
type fakeRegistrationRepo struct {
	mu           sync.Mutex
	records      []*entity.Registration
	CreateErr    error
	FindErr      error
	UIDConflicts int

	createCalls int
}

func (f *fakeRegistrationRepo) FindByRegistrant(ctx context.Context, courseID, name, phone string) (*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FindErr != nil {
		return nil, f.FindErr
	}
	for _, r := range f.records {
		if r.CourseID == courseID && r.Name == name && r.Phone == phone {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *entity.Registration) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.CreateErr != nil {
		return uuid.Nil, f.CreateErr
	}
	if f.UIDConflicts > 0 {
		f.UIDConflicts--
		return uuid.Nil, apperror.NewUIDConflictError("uid taken", nil)
	}
	for _, r := range f.records {
		if r.UID == reg.UID {
			return uuid.Nil, apperror.NewUIDConflictError("uid taken", nil)
		}
		if r.CourseID == reg.CourseID && r.Name == reg.Name && r.Phone == reg.Phone {
			return uuid.Nil, apperror.NewDuplicateRegistrationError("duplicate", nil)
		}
	}
	f.records = append(f.records, reg)
	return reg.ID, nil
}

func (f *fakeRegistrationRepo) All() []*entity.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entity.Registration(nil), f.records...)
}

func (f *fakeRegistrationRepo) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

type mockGateway struct {
	GrantTokenFunc     func(ctx context.Context) (*bkash.AccessToken, error)
	CreatePaymentFunc  func(ctx context.Context, token string, req bkash.CreatePaymentRequest) (*bkash.CreatePaymentResponse, error)
	ExecutePaymentFunc func(ctx context.Context, token, paymentID string) (*bkash.ExecutePaymentResponse, error)

	executeCalls int
}

func (m *mockGateway) GrantToken(ctx context.Context) (*bkash.AccessToken, error) {
	if m.GrantTokenFunc != nil {
		return m.GrantTokenFunc(ctx)
	}
	return &bkash.AccessToken{IDToken: "tok-1"}, nil
}

func (m *mockGateway) CreatePayment(ctx context.Context, token string, req bkash.CreatePaymentRequest) (*bkash.CreatePaymentResponse, error) {
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, token, req)
	}
	return &bkash.CreatePaymentResponse{
		StatusCode: bkash.StatusSuccess,
		PaymentID:  "P1",
		BkashURL:   "https://sandbox.bka.sh/pay?paymentID=P1",
	}, nil
}

func (m *mockGateway) ExecutePayment(ctx context.Context, token, paymentID string) (*bkash.ExecutePaymentResponse, error) {
	m.executeCalls++
	if m.ExecutePaymentFunc != nil {
		return m.ExecutePaymentFunc(ctx, token, paymentID)
	}
	return &bkash.ExecutePaymentResponse{
		StatusCode: bkash.StatusSuccess,
		PaymentID:  paymentID,
		TrxID:      "TRX1",
	}, nil
}

type mockPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
	Err    error
}

func (m *mockPublisher) PublishJSON(ctx context.Context, routingKey string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, routingKey)
	m.events = append(m.events, v)
	return m.Err
}

func (m *mockPublisher) Published() ([]string, []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...), append([]any(nil), m.events...)
}

func (m *mockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// blockingPublisher holds every publish until release is closed.
type blockingPublisher struct {
	release chan struct{}
}

func (b *blockingPublisher) PublishJSON(ctx context.Context, routingKey string, v any) error {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}

type mockRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *mockRecorder) ObserveCheckout(method, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, method+":"+outcome)
}

func testCourses() map[string]*entity.Course {
	return map[string]*entity.Course{
		"c1": {ID: "c1", Title: "IELTS", Price: decimal.NewFromInt(800), OfferPrice: decimal.NewFromInt(500), Active: true},
		"c2": {ID: "c2", Title: "Free seminar", Price: decimal.Zero, OfferPrice: decimal.Zero, Active: true},
	}
}

func courseRepoWith(courses map[string]*entity.Course) *mockCourseRepo {
	return &mockCourseRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*entity.Course, error) {
			return courses[id], nil
		},
	}
}

type testDeps struct {
	repo      *repository.Repository
	courses   *mockCourseRepo
	regs      *fakeRegistrationRepo
	pending   *repository.MemoryPendingCheckoutRepository
	gateway   *mockGateway
	publisher *mockPublisher
	recorder  *mockRecorder
	now       func() time.Time
}

func newTestDeps() *testDeps {
	d := &testDeps{
		courses:   courseRepoWith(testCourses()),
		regs:      &fakeRegistrationRepo{},
		pending:   repository.NewPendingCheckoutRepository(noopLogger),
		gateway:   &mockGateway{},
		publisher: &mockPublisher{},
		recorder:  &mockRecorder{},
		now:       time.Now,
	}
	d.repo = &repository.Repository{
		Course:       d.courses,
		Schedule:     &mockScheduleRepo{},
		Registration: d.regs,
		Pending:      d.pending,
	}
	return d
}

func (d *testDeps) options() Options {
	return Options{
		Events:  d.publisher,
		Metrics: d.recorder,
		Now:     d.now,
	}
}
