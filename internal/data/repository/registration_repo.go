package repository

import (
	"context"
	"errors"
	"fmt"

	"brave-registration/internal/data/entity"
	"brave-registration/pkg/apperror"
	"brave-registration/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation = "23505"

	// Authoritative guard against duplicate registrations; see migrations/001_init.sql.
	registrantUniqueConstraint = "registrations_course_name_phone_key"
	uidUniqueConstraint        = "registrations_uid_key"
)

type RegistrationRepository interface {
	FindByRegistrant(ctx context.Context, courseID, name, phone string) (*entity.Registration, error)
	Create(ctx context.Context, registration *entity.Registration) (uuid.UUID, error)
}

type registrationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRegistrationRepository(db database.PgxIface, log *zap.Logger) RegistrationRepository {
	return &registrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "registration")),
	}
}

func (r *registrationRepository) FindByRegistrant(ctx context.Context, courseID, name, phone string) (*entity.Registration, error) {
	query := `
		SELECT id, uid, course_id, name, phone, email, address, extra, paid,
		       payment_method, amount, payment_id, trx_id, created_at
		FROM registrations
		WHERE course_id = $1 AND name = $2 AND phone = $3
	`

	var reg entity.Registration
	err := r.db.QueryRow(ctx, query, courseID, name, phone).Scan(
		&reg.ID,
		&reg.UID,
		&reg.CourseID,
		&reg.Name,
		&reg.Phone,
		&reg.Email,
		&reg.Address,
		&reg.Extra,
		&reg.Paid,
		&reg.PaymentMethod,
		&reg.Amount,
		&reg.PaymentID,
		&reg.TrxID,
		&reg.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find registration",
			zap.Error(err),
			zap.String("course_id", courseID),
			zap.String("phone", phone),
		)
		return nil, fmt.Errorf("find registration for course %s: %w", courseID, err)
	}

	return &reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *entity.Registration) (uuid.UUID, error) {
	query := `
		INSERT INTO registrations (id, uid, course_id, name, phone, email, address, extra, paid,
		                           payment_method, amount, payment_id, trx_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		reg.ID,
		reg.UID,
		reg.CourseID,
		reg.Name,
		reg.Phone,
		reg.Email,
		reg.Address,
		reg.Extra,
		reg.Paid,
		reg.PaymentMethod,
		reg.Amount,
		reg.PaymentID,
		reg.TrxID,
		reg.CreatedAt,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case registrantUniqueConstraint:
				r.log.Warn("Concurrent duplicate registration rejected by constraint",
					zap.String("course_id", reg.CourseID),
					zap.String("phone", reg.Phone),
				)
				return uuid.Nil, apperror.NewDuplicateRegistrationError("registrant already registered in this course", err)

			case uidUniqueConstraint:
				return uuid.Nil, apperror.NewUIDConflictError(fmt.Sprintf("uid %s already taken", reg.UID), err)
			}
		}

		r.log.Error("Failed to create registration",
			zap.Error(err),
			zap.String("uid", reg.UID),
			zap.String("course_id", reg.CourseID),
		)
		return uuid.Nil, apperror.NewPersistenceError(fmt.Sprintf("insert registration %s", reg.UID), err)
	}

	return id, nil
}
