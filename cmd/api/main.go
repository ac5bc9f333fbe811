package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mazadcars/mazad-backend/api/routes"
	"github.com/mazadcars/mazad-backend/internal/auctions"
	"github.com/mazadcars/mazad-backend/internal/catalogs"
	"github.com/mazadcars/mazad-backend/internal/scheduler"
	"github.com/mazadcars/mazad-backend/internal/users"
	"github.com/mazadcars/mazad-backend/internal/vehicles"
	"github.com/mazadcars/mazad-backend/pkg/config"
	"github.com/mazadcars/mazad-backend/pkg/db"
	"github.com/mazadcars/mazad-backend/pkg/logger"
	"github.com/mazadcars/mazad-backend/pkg/metrics"
	"github.com/mazadcars/mazad-backend/pkg/migrate"
	"github.com/mazadcars/mazad-backend/pkg/outbox"
	"github.com/mazadcars/mazad-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	vehiclesRepo := vehicles.NewRepository(conn)
	outboxService := outbox.NewService(outbox.NewRepository(conn), logg)
	biddingMetrics := metrics.NewBiddingMetrics(prometheus.DefaultRegisterer)

	userService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	vehicleService, err := vehicles.NewService(vehiclesRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicle service", err)
		os.Exit(1)
	}

	auctionsRepo := auctions.NewRepository(conn)
	auctionService, err := auctions.NewService(auctions.Params{
		Repo:               auctionsRepo,
		Users:              usersRepo,
		Vehicles:           vehiclesRepo,
		Tx:                 dbClient,
		Outbox:             outboxService,
		Metrics:            biddingMetrics,
		AntiSnipeWindow:    cfg.Bidding.AntiSnipeWindow,
		AntiSnipeExtension: cfg.Bidding.AntiSnipeExtension,
		DefaultEntryFee:    cfg.Bidding.DefaultEntryFee,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auction service", err)
		os.Exit(1)
	}

	catalogService, err := catalogs.NewService(catalogs.Params{
		Repo:        catalogs.NewRepository(conn),
		Users:       usersRepo,
		Vehicles:    vehiclesRepo,
		Tx:          dbClient,
		Outbox:      outboxService,
		Metrics:     biddingMetrics,
		LotDuration: cfg.Catalog.LotDuration,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	sweepJob, err := scheduler.NewLifecycleSweepJob(auctionsRepo, dbClient, outboxService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sweep job", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			auctionService,
			catalogService,
			vehicleService,
			userService,
			sweepJob,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
