package adaptor

import (
	"encoding/json"
	"net/http"

	"brave-registration/internal/dto/request"
	"brave-registration/internal/usecase"
	"brave-registration/pkg/apperror"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// PhysicalCheckout handles POST /api/v1/physical-checkout
func (h *CheckoutHandler) PhysicalCheckout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCheckoutRequest(r)
	if err != nil {
		handleServiceError(h.log, w, err, "physical checkout")
		return
	}

	resp, err := h.service.PhysicalCheckout(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "physical checkout")
		return
	}

	utils.ResponseSuccess(w, resp)
}

func decodeCheckoutRequest(r *http.Request) (*request.CheckoutRequest, error) {
	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperror.NewValidationError("invalid request body", err)
	}
	return &req, nil
}
