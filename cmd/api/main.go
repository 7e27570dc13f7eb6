package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/app"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/cache"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/clock"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/config"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/storage/postgres"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/stream"
	transporthttp "github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/transport/http"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	dashCache := cache.New(cfg.RedisAddr)
	if dashCache != nil {
		if err := dashCache.Ping(startupCtx); err != nil {
			logger.Printf("WARN: redis unreachable, dashboard caching disabled: %v", err)
			dashCache = nil
		} else {
			defer dashCache.Close()
		}
	}

	var publisher stream.Publisher = stream.NopPublisher()
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var producer *stream.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = stream.NewProducer(cfg.KafkaBrokers, cfg.ServiceName, 256, logger)
		producer.Start(runCtx)
		publisher = producer
	}

	sysClock := clock.NewSystem()
	reservationSvc := app.NewReservationService(postgres.NewReservationRepository(pool), sysClock, publisher)
	lifecycleSvc := app.NewLifecycleService(postgres.NewLifecycleRepository(pool), sysClock, publisher)
	calendarSvc := app.NewCalendarService(postgres.NewCalendarRepository(pool), sysClock)
	catalogSvc := app.NewCatalogService(postgres.NewCatalogRepository(pool), sysClock)
	adminSvc := app.NewAdminService(postgres.NewAdminRepository(pool), sysClock,
		app.WithCache(dashCache),
		app.WithLowStockThresholds(cfg.LowStockFloor, cfg.LowStockMedium),
	)

	handler := transporthttp.NewRouter(transporthttp.Services{
		Reservations: reservationSvc,
		Payments:     lifecycleSvc,
		Fulfillment:  lifecycleSvc,
		Calendar:     calendarSvc,
		Catalog:      catalogSvc,
		Dashboard:    adminSvc,
	}, cfg.CORSOrigins, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	log.Printf("api listening on %s", cfg.HTTPAddr)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-runCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}

	stop()
	if producer != nil {
		producer.WaitClosed()
	}
	log.Printf("server stopped")
}
