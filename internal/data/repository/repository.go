package repository

import (
	"brave-registration/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Course       CourseRepository
	Schedule     ScheduleRepository
	Registration RegistrationRepository
	Pending      PendingCheckoutRepository
}

func NewRepository(db database.PgxIface, pending PendingCheckoutRepository, log *zap.Logger) *Repository {
	return &Repository{
		Course:       NewCourseRepository(db, log),
		Schedule:     NewScheduleRepository(db, log),
		Registration: NewRegistrationRepository(db, log),
		Pending:      pending,
	}
}
