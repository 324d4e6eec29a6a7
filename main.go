// main.go
package main

import (
	"log"

	"hotel-reservation/cmd"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/jobs"
	"hotel-reservation/internal/wire"
	"hotel-reservation/pkg/broker"
	"hotel-reservation/pkg/cache"
	"hotel-reservation/pkg/database"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

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
		zap.String("timezone", config.Reservation.Location.String()),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Rate cache is optional
	var rateCache cache.Cache = cache.Noop{}
	if config.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, rate cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			rateCache = cache.NewRedisCache(rdb)
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// Event broker is optional. A configured broker that is down at boot is
	// redialed by Publish.
	var events broker.Publisher = broker.Noop{Log: logger}
	if config.Broker.URL != "" {
		mq := broker.NewRabbitMQ(config.Broker.URL, config.Broker.Exchange, logger)
		if err := mq.Connect(); err != nil {
			logger.Warn("RabbitMQ unavailable, will reconnect on publish", zap.Error(err))
		} else {
			logger.Info("RabbitMQ connected", zap.String("exchange", config.Broker.Exchange))
		}
		events = mq
	}
	defer events.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, rateCache, config.Redis.RateCacheTTL, logger)
	tx := database.NewTransactor(db, config.Database.MaxRetries, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, tx, events, config, logger)

	// Background jobs
	scheduler := jobs.NewCron(logger)
	if err := jobs.NewJobs(app.Service.Invoice, app.Service.Booking, config.Reservation.PendingTTL, logger).
		Register(scheduler, config.Jobs); err != nil {
		logger.Fatal("Failed to register cron jobs", zap.Error(err))
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
	logger.Info("Server exited")
}
