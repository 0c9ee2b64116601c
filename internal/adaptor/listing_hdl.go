package adaptor

import (
	"net/http"

	"brave-registration/internal/dto/request"
	"brave-registration/internal/usecase"
	"brave-registration/pkg/utils"

	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// GetCourses handles GET /api/v1/courses?id=&all=
func (h *ListingHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.CourseQuery{
		ID:  optionalParam(query.Get("id")),
		All: query.Get("all") != "",
	}

	courses, err := h.service.GetCourses(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get courses")
		return
	}

	utils.ResponseSuccess(w, courses)
}

// GetSchedule handles GET /api/v1/schedule?course=&date=
func (h *ListingHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ScheduleQuery{
		Course: optionalParam(query.Get("course")),
		Date:   optionalParam(query.Get("date")),
	}

	entries, err := h.service.GetSchedule(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get schedule")
		return
	}

	utils.ResponseSuccess(w, entries)
}

func optionalParam(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
