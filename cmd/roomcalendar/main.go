// Command roomcalendar serves the room booking calendar API.
//
//	@title			Room Calendar API
//	@version		1.0
//	@description	Room booking calendar: availability checks, bookings, events and exports.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"roomcalendar/config"
	_ "roomcalendar/docs"
	"roomcalendar/internal/adapters/broker"
	"roomcalendar/internal/adapters/cache"
	"roomcalendar/internal/adapters/postgrest"
	httpdelivery "roomcalendar/internal/delivery/http"
	"roomcalendar/internal/delivery/http/controllers"
	"roomcalendar/internal/delivery/http/middleware"
	"roomcalendar/internal/domain"
	"roomcalendar/internal/jobs"
	"roomcalendar/internal/repository/postgres"
	"roomcalendar/internal/services"
)

const shutdownTimeout = 15 * time.Second

// stores is the set of persistence ports backed by the configured store.
type stores struct {
	rooms     domain.RoomRepository
	events    domain.EventRepository
	bookings  domain.BookingRepository
	predicate domain.SlotPredicate
	reader    domain.BookingReader
	close     func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	handler := config.NewHandler(os.Stdout)
	var logs controllers.LogBuffer
	if cfg.LogBufferSize > 0 {
		ring := config.NewRingHandler(handler, cfg.LogBufferSize)
		handler, logs = ring, ring
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, logs); err != nil {
		logger.Error("roomcalendar exiting", "err", err)
		os.Exit(1)
	}
	logger.Info("roomcalendar exited")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, logs controllers.LogBuffer) error {
	logger.Info("roomcalendar starting",
		"env", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreBackend,
		"cache", cfg.RedisAddr != "",
		"broker", cfg.AMQPURL != "",
	)

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Warn("close store", "err", err)
		}
	}()

	retrier := services.NewRetrier(cfg.RetryMaxAttempts, cfg.RetryBaseDelay, logger)

	catalog, err := config.LoadRooms(cfg.RoomsFile)
	if err != nil {
		return err
	}
	now := time.Now()
	rooms := make([]*domain.Room, len(catalog))
	for i, rc := range catalog {
		rooms[i] = rc.Room(now)
	}
	if err := services.SyncRooms(ctx, st.rooms, rooms, retrier, logger); err != nil {
		return fmt.Errorf("sync room catalog: %w", err)
	}

	monthCache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	publisher, closePublisher, err := openPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	checker := services.NewAvailabilityChecker(
		st.predicate,
		st.reader,
		services.NewRetrier(cfg.AvailabilityPredicateAttempts, cfg.RetryBaseDelay, logger),
		retrier,
		cfg.AvailabilityConcurrency,
		logger,
	)
	svc := services.NewBookingService(services.BookingDeps{
		Rooms:        st.rooms,
		Events:       st.events,
		Bookings:     st.bookings,
		Reader:       st.reader,
		Availability: checker,
		Retrier:      retrier,
		Cache:        monthCache,
		Publisher:    publisher,
		Logger:       logger,
		Timeout:      cfg.RequestTimeout,
	})

	reaper := services.NewOrphanReaper(st.events, retrier, cfg.OrphanGracePeriod, nil, logger)
	scheduler, err := jobs.NewScheduler(cfg.OrphanReaperSchedule, reaper, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	logger.Info("orphan reaper scheduled", "schedule", cfg.OrphanReaperSchedule, "next", scheduler.Next())

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Bookings:     controllers.NewBookingController(logger, svc),
		Events:       controllers.NewEventController(logger, svc),
		Availability: controllers.NewAvailabilityController(logger, svc),
		Rooms:        controllers.NewRoomController(logger, svc),
		Health:       controllers.NewHealthController(logs),
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "err", err)
	}
	scheduler.Stop(shutdownCtx)
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgREST:
		store := postgrest.NewStore(postgrest.NewClient(cfg.PostgRESTURL, cfg.PostgRESTAPIKey, cfg.PostgRESTTimeout, logger))
		return &stores{
			rooms:     store.Rooms(),
			events:    store.Events(),
			bookings:  store.Bookings(),
			predicate: store.Predicate(),
			reader:    store.Reader(),
			close:     func() error { return nil },
		}, nil
	default:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		return &stores{
			rooms:     postgres.NewRoomRepository(db),
			events:    postgres.NewEventRepository(db),
			bookings:  postgres.NewBookingRepository(db),
			predicate: postgres.NewAvailabilityRepository(db),
			reader:    postgres.NewBookingDetailsRepository(db),
			close:     db.Close,
		}, nil
	}
}

func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.MonthCache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.NewNoopMonthCache(), func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("close redis", "err", err)
		}
	}
	return cache.NewRedisMonthCache(rdb, cfg.CacheTTL), closeFn, nil
}

func openPublisher(cfg *config.Config, logger *slog.Logger) (domain.EventPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		return broker.NewNoopPublisher(), func() {}, nil
	}
	pub, err := broker.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := pub.Close(); err != nil {
			logger.Warn("close broker", "err", err)
		}
	}
	return pub, closeFn, nil
}
