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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"seatbooker/internal/booking"
	"seatbooker/internal/config"
	"seatbooker/internal/http-server/handlers/booking/confirmPayment"
	"seatbooker/internal/http-server/handlers/booking/submitBooking"
	"seatbooker/internal/http-server/handlers/event/createEvent"
	"seatbooker/internal/http-server/handlers/event/getAllEvents"
	"seatbooker/internal/http-server/handlers/event/getEvent"
	"seatbooker/internal/http-server/middleware/mwlogger"
	"seatbooker/internal/lib/logger/handlers/slogpretty"
	"seatbooker/internal/lib/logger/sl"
	"seatbooker/internal/notify"
	"seatbooker/internal/payment"
	"seatbooker/internal/storage"
	"seatbooker/internal/storage/memstore"
	"seatbooker/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting seat booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	var store storage.Store
	closeStore := func() error { return nil }

	switch cfg.Storage.Driver {
	case "postgres":
		pg, err := postgres.InitDB(&cfg.Storage.Database)
		if err != nil {
			log.Error("failed to init storage", sl.Err(err))
			os.Exit(1)
		}
		store = pg
		closeStore = pg.Close
	default:
		store = memstore.New()
	}

	var notifier booking.Notifier = notify.NewLogNotifier(log)
	if cfg.Mailer.APIKey != "" {
		notifier = notify.NewMailer(cfg.Mailer.Domain, cfg.Mailer.APIKey, cfg.Mailer.Sender)
	}

	workflow := booking.NewWorkflow(log, store, payment.NewManual(), notifier)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/events", createEvent.New(log, store))
	router.Get("/events", getAllEvents.New(log, store))
	router.Get("/events/{id}", getEvent.New(log, store))
	router.Post("/events/{id}/bookings", submitBooking.New(log, workflow))
	router.Post("/bookings/{id}/payment", confirmPayment.New(log, workflow))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cancelled, err := store.CancelExpiredBookings(cfg.Booking.PendingTTL)
				if err != nil {
					log.Error("failed to cancel expired bookings", sl.Err(err))
					continue
				}
				if cancelled > 0 {
					log.Info("cancelled expired bookings", slog.Int("count", cancelled))
				}
			case <-stop:
				return
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err := closeStore(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
