package wire

import (
	"brave-registration/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCheckout(r chi.Router, checkoutHandler *adaptor.CheckoutHandler, bkashHandler *adaptor.BkashHandler) {
	// POST /api/v1/physical-checkout - cash payment at the venue
	r.Post("/physical-checkout", checkoutHandler.PhysicalCheckout)

	// POST /api/v1/bkash-checkout - returns the bKash payment page URL
	r.Post("/bkash-checkout", bkashHandler.Checkout)

	// GET /api/v1/bkash-execute-payment - bKash redirects the payer here
	r.Get("/bkash-execute-payment", bkashHandler.ExecutePayment)
}
