package usecase

import (
	"context"

	"brave-registration/internal/data/entity"
	"brave-registration/internal/data/repository"
	"brave-registration/pkg/apperror"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

// maxUIDAttempts bounds how many uids are drawn for one registration.
const maxUIDAttempts = 3

// commitRegistration assigns reg a fresh uid and inserts it, drawing again
// while the uid is already taken. Any other error is returned as is.
func commitRegistration(ctx context.Context, repo repository.RegistrationRepository, reg *entity.Registration, log *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= maxUIDAttempts; attempt++ {
		reg.UID = utils.GenerateRegistrationUID()

		_, err = repo.Create(ctx, reg)
		if !apperror.Is(err, apperror.ReasonUIDConflict) {
			return err
		}

		log.Warn("Registration uid taken, drawing another",
			zap.String("uid", reg.UID),
			zap.Int("attempt", attempt),
		)
	}
	return err
}
