package adaptor

import (
	"net/http"

	"brave-registration/internal/usecase"
	"brave-registration/pkg/apperror"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

const messageError = "error"

type Handler struct {
	Listing  *ListingHandler
	Checkout *CheckoutHandler
	Bkash    *BkashHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Listing:  NewListingHandler(service.Listing, log),
		Checkout: NewCheckoutHandler(service.Checkout, log),
		Bkash:    NewBkashHandler(service.Bkash, config.HTTP.FrontendURL, log),
	}
}

// handleServiceError reports every failure as 400 {message:"error", error:<text>}.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	reason, _ := apperror.ReasonOf(err)

	switch reason {
	case apperror.ReasonValidation, apperror.ReasonNotFound, apperror.ReasonDuplicateRegistration:
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("reason", string(reason)),
			zap.String("operation", operation))

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("reason", string(reason)),
			zap.String("operation", operation))
	}

	utils.ResponseBadRequest(w, messageError, err)
}
