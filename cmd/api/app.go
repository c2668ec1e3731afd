package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"travel-po/internal/general/config"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/openweather"
	"travel-po/internal/general/postgres"
	"travel-po/internal/general/rabbitmq"
	"travel-po/internal/general/redis"
	"travel-po/internal/general/web"
	"travel-po/internal/general/websocket"

	authhandler "travel-po/internal/software/auth/handler"
	authservice "travel-po/internal/software/auth/service"
	bookinghandler "travel-po/internal/software/booking/handler"
	bookingservice "travel-po/internal/software/booking/service"
	fleethandler "travel-po/internal/software/fleet/handler"
	fleetservice "travel-po/internal/software/fleet/service"
	locationhandler "travel-po/internal/software/location/handler"
	locationservice "travel-po/internal/software/location/service"
	trackinghandler "travel-po/internal/software/tracking/handler"
	trackingservice "travel-po/internal/software/tracking/service"
	travelhandler "travel-po/internal/software/travel/handler"
	travelservice "travel-po/internal/software/travel/service"
	weatherhandler "travel-po/internal/software/weather/handler"
	weatherservice "travel-po/internal/software/weather/service"
)

// Run wires the API service and blocks until ctx is cancelled.
func Run(ctx context.Context, cfgPath string, maxConcurrent int, migrateUp bool) error {
	// static request ID for startup logs
	log := logger.New("travel-po-api")
	ctx = log.WithRequestID(ctx, "startup-001")

	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		log.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	if migrateUp {
		if err := postgres.RunMigrations(ctx, cfg, log, "migrations"); err != nil {
			log.Error(ctx, "migrations_failed", "Failed to apply schema migrations", err, nil)
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "db_connection_failed", "Failed to initialize Postgres pool", err, nil)
		return err
	}
	defer pool.Close()

	redisClient, err := redis.Connect(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "redis_connection_failed", "Failed to connect to Redis", err, nil)
		return err
	}
	defer redisClient.Close()

	rmq, err := rabbitmq.Connect(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer rmq.Close()
	pub := rabbitmq.NewMQPublisher(rmq)

	jwtManager := jwt.NewManager(cfg.JWT.SecretKey, cfg.JWTAccessTTL())

	uow := postgres.NewUnitOfWork(pool)
	operatorRepo := postgres.NewOperatorRepo()
	studentRepo := postgres.NewStudentRepo()
	vehicleRepo := postgres.NewVehicleRepo()
	driverRepo := postgres.NewDriverRepo()
	travelRepo := postgres.NewTravelRepo()
	bookingRepo := postgres.NewBookingRepo()
	locationRepo := postgres.NewLocationRepo()
	driverLocRepo := postgres.NewDriverLocationRepo()
	trackingRepo := postgres.NewTravelTrackingRepo()
	queueRepo := postgres.NewPickupQueueRepo()

	weatherCache := redis.NewWeatherCache(redisClient, cfg.WeatherCacheTTL())
	weatherProvider := openweather.NewClient(cfg.Weather.APIKey)

	authSvc := authservice.NewAuthService(log, uow, operatorRepo, studentRepo, jwtManager)
	fleetSvc := fleetservice.NewFleetService(log, uow, vehicleRepo, driverRepo)
	travelSvc := travelservice.NewTravelService(log, uow, travelRepo)
	bookingSvc := bookingservice.NewBookingService(log, uow, bookingRepo, travelRepo, pub)
	locationSvc := locationservice.NewLocationService(log, uow, locationRepo)
	trackingSvc := trackingservice.NewTrackingService(log, uow, driverLocRepo, driverRepo,
		bookingRepo, queueRepo, trackingRepo, pub, cfg.TrackingOpTimeout())
	weatherSvc := weatherservice.NewWeatherService(log, uow, travelRepo, locationRepo,
		weatherCache, weatherProvider, pub)

	feed := websocket.NewDriverFeed(log, jwtManager, trackingSvc)

	mux := http.NewServeMux()
	authhandler.NewAuthHTTPHandler(authSvc, log).RegisterRoutes(mux)
	fleethandler.NewFleetHTTPHandler(fleetSvc, log, jwtManager).RegisterRoutes(mux)
	travelhandler.NewTravelHTTPHandler(travelSvc, log, jwtManager).RegisterRoutes(mux)
	bookinghandler.NewBookingHTTPHandler(bookingSvc, log, jwtManager).RegisterRoutes(mux)
	locationhandler.NewLocationHTTPHandler(locationSvc, log).RegisterRoutes(mux)
	trackinghandler.NewTrackingHTTPHandler(trackingSvc, log, jwtManager, feed).RegisterRoutes(mux)
	weatherhandler.NewWeatherHTTPHandler(weatherSvc, log, jwtManager).RegisterRoutes(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		web.Message(r.Context(), log, w, http.StatusOK, "OK", map[string]any{
			"service": "travel-po-api",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		web.Message(r.Context(), log, w, http.StatusOK, "Travel PO API", nil)
	})

	limited := withConcurrencyLimit(maxConcurrent, mux)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           limited,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Info(ctx, "service_started",
		fmt.Sprintf("API service started on port %d", cfg.Server.Port),
		map[string]any{"port": cfg.Server.Port, "max_concurrent": maxConcurrent},
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info(ctx, "shutdown_started", "Shutting down HTTP server", nil)
		if err := srv.Shutdown(shCtx); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "http_shutdown_failed", "Failed to gracefully shut down HTTP server", err, nil)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "http_server_error", "HTTP server terminated with error", err,
				map[string]any{"port": cfg.Server.Port})
			return err
		}
	}

	return nil
}

// withConcurrencyLimit wraps an http.Handler with a semaphore-based limiter.
// It controls how many HTTP requests can be in-progress at the same time.
func withConcurrencyLimit(n int, next http.Handler) http.Handler {
	if n <= 0 {
		return next
	}
	sem := make(chan struct{}, n)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}: // acquire
			defer func() { <-sem }() // release
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
			// client canceled or server is shutting down
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	})
}
