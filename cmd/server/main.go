package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/email"
	"devevent/internal/database"
	httpdelivery "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/domain"
	"devevent/internal/repository/mongodb"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

const shutdownTimeout = 10 * time.Second

// connection is the part of database.Manager the server needs after wiring.
type connection interface {
	IsConnected(ctx context.Context) bool
	Disconnect(ctx context.Context) error
}

type storage struct {
	events   domain.EventRepository
	bookings domain.BookingRepository
	conn     connection
}

// @title DevEvent API
// @version 1.0
// @description Developer event listings and bookings.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	logger.Info("starting server", slog.String("store", cfg.Store()), slog.String("port", cfg.Port))

	store := openStorage(cfg, logger)

	mailer, err := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mail.SESRegion,
			AccessKeyID:     cfg.Mail.AccessKeyID,
			SecretAccessKey: cfg.Mail.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventService := services.NewEventService(store.events, cfg.RequestTimeout)
	bookingService := services.NewBookingService(logger, store.bookings, store.events, emailService, cfg.RequestTimeout)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:            logger,
		EventController:   controllers.NewEventController(logger, eventService),
		BookingController: controllers.NewBookingController(logger, bookingService),
		HealthController:  controllers.NewHealthController(store.conn, cfg.Store()),
		Registry:          registry,
		AllowedOrigins:    cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Info("shutting down", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	if err := store.conn.Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect database", "err", err)
	}
	logger.Info("server stopped")
}

func openStorage(cfg *config.Config, logger *slog.Logger) storage {
	if cfg.Store() == config.StorePostgres {
		m := database.NewManager(logger, postgres.Dialer(cfg.DBUrl), cfg.ServerSelectionTimeout)
		src := postgres.FromManager(m)
		return storage{
			events:   postgres.NewEventRepository(src),
			bookings: postgres.NewBookingRepository(src),
			conn:     m,
		}
	}
	m := database.NewManager(logger, mongodb.Dialer(cfg.DBUrl, cfg.DBName, cfg.ServerSelectionTimeout), cfg.ServerSelectionTimeout)
	src := mongodb.FromManager(m)
	return storage{
		events:   mongodb.NewEventRepository(src),
		bookings: mongodb.NewBookingRepository(src),
		conn:     m,
	}
}
