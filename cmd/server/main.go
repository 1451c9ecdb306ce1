package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/config"
	"github.com/dsaslb/restaurant-management-system/internal/infra"
	"github.com/dsaslb/restaurant-management-system/internal/repository"
	"github.com/dsaslb/restaurant-management-system/internal/router"
	"github.com/dsaslb/restaurant-management-system/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reverse geocoding goes through a circuit breaker so a downed
	// Nominatim never blocks attendance writes.
	geocoderCB := infra.NewBreaker(5, 60*time.Second)
	geocoder := infra.NewGeocoder(cfg.GeocoderURL, geocoderCB, rdb)

	// Async jobs: in-app notifications and email, consumed by a BRPOP pool.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	notificationRepo := repository.NewNotificationRepository(db)
	pool := worker.NewPool(rdb, worker.NewNotifyWorker(notificationRepo), worker.NewEmailWorker(mailer))
	pool.Start(ctx, cfg.WorkerPoolSize)

	// Contract expiry scanner
	worker.StartContractCron(ctx, worker.ContractCronConfig{
		ContractRepo:   repository.NewContractRepository(db),
		Dispatcher:     dispatcher,
		RDB:            rdb,
		AdminAlertMail: cfg.AdminAlertEmail,
	})

	r := router.New(cfg, db, rdb, geocoder)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("restaurant backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
