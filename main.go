// main.go
package main

import (
	"context"
	"log"
	"time"

	"brave-registration/cmd"
	"brave-registration/internal/data/repository"
	"brave-registration/internal/wire"
	"brave-registration/pkg/bkash"
	"brave-registration/pkg/database"
	"brave-registration/pkg/metrics"
	"brave-registration/pkg/mq"
	"brave-registration/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const janitorInterval = time.Minute

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// In-flight bKash checkouts, swept once they outlive the session TTL
	pending := repository.NewPendingCheckoutRepository(logger)
	pending.StartJanitor(ctx, janitorInterval)

	repos := repository.NewRepository(db, pending, logger)

	gateway := bkash.NewClient(bkash.Config{
		GrantTokenURL:     config.Bkash.GrantTokenURL,
		CreatePaymentURL:  config.Bkash.CreatePaymentURL,
		ExecutePaymentURL: config.Bkash.ExecutePaymentURL,
		AppKey:            config.Bkash.AppKey,
		AppSecret:         config.Bkash.AppSecret,
		Username:          config.Bkash.Username,
		Password:          config.Bkash.Password,
		Timeout:           config.Bkash.Timeout,
	}, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srvMetrics := metrics.NewServerMetrics(registry, "registration")

	deps := wire.Deps{
		Repo:    repos,
		Gateway: gateway,
		Metrics: srvMetrics,
	}

	// Registration events are optional
	if config.Rabbit.URL != "" {
		publisher, err := mq.NewPublisher(config.Rabbit.URL, config.Rabbit.Exchange)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, registration events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			deps.Events = publisher
			logger.Info("Publishing registration events", zap.String("exchange", config.Rabbit.Exchange))
		}
	}

	// Wire all dependencies
	app := wire.Wiring(deps, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
