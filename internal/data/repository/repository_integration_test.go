//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"brave-registration/internal/data/entity"
	"brave-registration/pkg/apperror"
	"brave-registration/pkg/database"
	"brave-registration/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

var (
	pgContainer *postgres.PostgresContainer
	testDB      database.PgxIface
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := setupPostgres(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	code := m.Run()

	testDB.Close()
	_ = pgContainer.Terminate(context.Background())
	os.Exit(code)
}

func setupPostgres(ctx context.Context) error {
	var err error
	pgContainer, err = postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("brave"),
		postgres.WithUsername("brave"),
		postgres.WithPassword("brave"),
		postgres.WithInitScripts(filepath.Join("..", "..", "..", "migrations", "001_init.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		return fmt.Errorf("error starting postgres testcontainer: %w", err)
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("error getting connection string: %w", err)
	}

	testDB, err = database.InitDB(utils.DatabaseConfig{URL: dsn, MaxConns: 4})
	if err != nil {
		return fmt.Errorf("error connecting to postgres: %w", err)
	}

	_, err = testDB.Exec(ctx, `
		INSERT INTO courses (id, title, price, offer_price, active) VALUES
			('c1', 'Spoken English', 800, 500, TRUE),
			('c2', 'Free Seminar', 0, 0, TRUE),
			('c3', 'Archived', 100, 100, FALSE);
		INSERT INTO schedule (id, course, date, time) VALUES
			('s1', 'c1', '2026-01-10', '10:00'),
			('s2', 'c1', '2026-01-11', '10:00'),
			('s3', 'c2', '2026-01-10', '16:00');
	`)
	return err
}

func TestCourseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(testDB, zap.NewNop())

	t.Run("active only", func(t *testing.T) {
		courses, err := repo.Find(ctx, entity.CourseFilter{})
		require.NoError(t, err)
		assert.Len(t, courses, 2)
	})

	t.Run("include all", func(t *testing.T) {
		courses, err := repo.Find(ctx, entity.CourseFilter{IncludeAll: true})
		require.NoError(t, err)
		assert.Len(t, courses, 3)
	})

	t.Run("by id keeps exact price", func(t *testing.T) {
		course, err := repo.FindByID(ctx, "c1")
		require.NoError(t, err)
		require.NotNil(t, course)
		assert.True(t, course.OfferPrice.Equal(decimal.NewFromInt(500)))
	})

	t.Run("missing id", func(t *testing.T) {
		course, err := repo.FindByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, course)
	})
}

func TestScheduleRepository(t *testing.T) {
	repo := NewScheduleRepository(testDB, zap.NewNop())
	course, date := "c1", "2026-01-10"

	entries, err := repo.Find(context.Background(), entity.ScheduleFilter{Course: &course, Date: &date})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].ID)
}

func TestRegistrationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository(testDB, zap.NewNop())

	details := entity.RegistrantDetails{
		Name:  "Alice",
		Phone: "01700000000",
		Extra: map[string]any{"institution": "DU"},
	}

	reg := entity.NewRegistration("c1", details)
	reg.UID = utils.GenerateRegistrationUID()
	reg.PaymentMethod = entity.PaymentMethodPhysical
	reg.Amount = decimal.NewFromInt(500)
	reg.CreatedAt = time.Now()

	id, err := repo.Create(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, id)

	found, err := repo.FindByRegistrant(ctx, "c1", "Alice", "01700000000")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, reg.UID, found.UID)
	assert.Equal(t, "DU", found.Extra["institution"])

	t.Run("constraint rejects a duplicate registrant", func(t *testing.T) {
		dup := entity.NewRegistration("c1", details)
		dup.UID = utils.GenerateRegistrationUID()
		dup.PaymentMethod = entity.PaymentMethodBkash
		dup.CreatedAt = time.Now()

		_, err := repo.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.ReasonDuplicateRegistration))
	})

	t.Run("taken uid is a uid conflict", func(t *testing.T) {
		other := entity.NewRegistration("c1", entity.RegistrantDetails{Name: "Bob", Phone: "01800000000"})
		other.UID = reg.UID
		other.PaymentMethod = entity.PaymentMethodPhysical
		other.CreatedAt = time.Now()

		_, err := repo.Create(ctx, other)
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.ReasonUIDConflict))
	})

	t.Run("unknown course is a persistence error", func(t *testing.T) {
		bad := entity.NewRegistration("missing", details)
		bad.UID = utils.GenerateRegistrationUID()
		bad.PaymentMethod = entity.PaymentMethodPhysical
		bad.CreatedAt = time.Now()

		_, err := repo.Create(ctx, bad)
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.ReasonPersistence))
	})
}
