package wire

import (
	"net/http"

	"brave-registration/internal/adaptor"
	"brave-registration/internal/data/repository"
	"brave-registration/internal/usecase"
	"brave-registration/pkg/metrics"
	"brave-registration/pkg/middleware"
	"brave-registration/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const greeting = "Hello from Brave Educations's server."

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Deps are the collaborators built in main.
type Deps struct {
	Repo    *repository.Repository
	Gateway usecase.PaymentGateway
	Events  usecase.EventPublisher
	Metrics *metrics.ServerMetrics
}

// Wiring builds services and handlers and mounts every route
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	opts := usecase.Options{Events: deps.Events}
	if deps.Metrics != nil {
		opts.Metrics = deps.Metrics
	}

	service := usecase.NewService(deps.Repo, deps.Gateway, config, logger, opts)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, deps.Metrics, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	m *metrics.ServerMetrics,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.CORSOrigin))
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.Handle("/metrics", m.Handler())
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(greeting))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		wireListing(r, handler.Listing)
		wireCheckout(r, handler.Checkout, handler.Bkash)
	})

	return r
}
