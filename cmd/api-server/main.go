package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontosys/clinic-api/internal/api"
	"github.com/odontosys/clinic-api/internal/appointment"
	"github.com/odontosys/clinic-api/internal/config"
	"github.com/odontosys/clinic-api/internal/db"
	"github.com/odontosys/clinic-api/internal/dentist"
	"github.com/odontosys/clinic-api/internal/metrics"
	"github.com/odontosys/clinic-api/internal/patient"
	redisclient "github.com/odontosys/clinic-api/internal/redis"
	"github.com/odontosys/clinic-api/internal/treatment"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("config load error")
	}

	logger := newLogger(cfg)
	logger.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTPPort).
		Str("version", version).
		Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	logger.Info().Msg("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing redis")
		}
	}()
	logger.Info().Msg("connected to Redis")

	hours := appointment.Hours{
		DayStart:     cfg.DayStart,
		DayEnd:       cfg.DayEnd,
		SlotInterval: cfg.SlotInterval,
		Step:         cfg.NextSlotStep,
		HorizonDays:  cfg.NextSlotHorizon,
	}

	locker := redisclient.NewRedisBookingLocker(rdb, cfg.LockTTL)
	bookingMetrics := metrics.NewBookings(nil)
	httpMetrics := metrics.NewHTTP(nil)

	router := api.NewRouter(api.RouterConfig{
		Appointments: appointment.NewService(appointment.NewPgRepository(pgPool), locker, hours, bookingMetrics, logger),
		Dentists:     dentist.NewService(dentist.NewPgRepository(pgPool), logger),
		Patients:     patient.NewService(patient.NewPgRepository(pgPool), logger),
		Treatments:   treatment.NewService(treatment.NewPgRepository(pgPool), logger),
		Hours:        hours,
		PgPool:       pgPool,
		Redis:        rdb,
		Logger:       logger,
		HTTPMetrics:  httpMetrics,
		Env:          cfg.Env,
		Version:      version,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	case <-rootCtx.Done():
		logger.Info().Msg("shutting down api-server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}

	logger.Info().Msg("api-server stopped")
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Env == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
