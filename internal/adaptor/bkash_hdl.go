package adaptor

import (
	"net/http"
	"net/url"
	"strings"

	"brave-registration/internal/dto/request"
	"brave-registration/internal/dto/response"
	"brave-registration/internal/usecase"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

type BkashHandler struct {
	service     usecase.BkashService
	frontendURL string
	log         *zap.Logger
}

func NewBkashHandler(service usecase.BkashService, frontendURL string, log *zap.Logger) *BkashHandler {
	return &BkashHandler{
		service:     service,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log.With(zap.String("handler", "bkash")),
	}
}

// Checkout handles POST /api/v1/bkash-checkout
func (h *BkashHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCheckoutRequest(r)
	if err != nil {
		handleServiceError(h.log, w, err, "bkash checkout")
		return
	}

	resp, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "bkash checkout")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// ExecutePayment handles GET /api/v1/bkash-execute-payment?status=&paymentID=
// It always answers with a redirect to the frontend checkout page.
func (h *BkashHandler) ExecutePayment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result := h.service.HandleCallback(r.Context(), &request.CallbackRequest{
		Status:    query.Get("status"),
		PaymentID: query.Get("paymentID"),
	})

	http.Redirect(w, r, h.redirectURL(result), http.StatusFound)
}

func (h *BkashHandler) redirectURL(result *response.CallbackResult) string {
	params := url.Values{}
	params.Set("status", string(result.Status))
	if result.Status == response.CallbackSuccessful {
		params.Set("uid", result.UID)
	}

	return h.frontendURL + "/checkout?" + params.Encode()
}
