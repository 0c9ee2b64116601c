package wire

import (
	"brave-registration/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireListing(r chi.Router, listingHandler *adaptor.ListingHandler) {
	// GET /api/v1/courses?id=&all=
	r.Get("/courses", listingHandler.GetCourses)

	// GET /api/v1/schedule?course=&date=
	r.Get("/schedule", listingHandler.GetSchedule)
}
