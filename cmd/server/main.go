package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/example/agent-assist/internal/booking"
	"github.com/example/agent-assist/internal/config"
	"github.com/example/agent-assist/internal/geocode"
	httpapi "github.com/example/agent-assist/internal/http"
	"github.com/example/agent-assist/internal/live"
	"github.com/example/agent-assist/internal/logging"
	"github.com/example/agent-assist/internal/models"
	"github.com/example/agent-assist/internal/notify"
	"github.com/example/agent-assist/internal/session"
	"github.com/example/agent-assist/internal/storage"
	"github.com/example/agent-assist/internal/submit"
	"github.com/example/agent-assist/internal/trip"
)

func main() {
	cfg, err := config.LoadServerConfig()
	logger := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var sessions booking.SessionStore
	if cfg.RedisAddr != "" {
		sessions = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionKeyPrefix, cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore()
		logger.Info("REDIS_ADDR not set, using in-memory sessions")
	}

	var orders storage.OrderStore
	if cfg.PGDSN != "" {
		if cfg.RunMigrations {
			if err := runMigrations(cfg.PGDSN); err != nil {
				logger.Error("migration failed", "error", err)
			}
		}
		ps, err := storage.NewPostgresStore(cfg.PGDSN)
		if err != nil {
			logger.Error("postgres unavailable, falling back to memory", "error", err)
		} else {
			orders = ps
		}
	}
	if orders == nil {
		orders = storage.NewMemoryStore()
	}

	var publisher booking.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
	}

	var geocoder geocode.Geocoder
	if cfg.GoogleMapsAPIKey != "" {
		g, err := geocode.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
		if err != nil {
			logger.Error("geocoder init failed", "error", err)
		} else {
			geocoder = g
		}
	}

	feed := live.NewQuoteFeed(logger)

	svc := &booking.Service{
		Sessions:     sessions,
		Orders:       orders,
		Transport:    submit.NewHTTPTransport(cfg.SubmitEndpoint),
		Publisher:    publisher,
		Feed:         feed,
		Trip:         trip.Resolver{Base: models.Coord{Lat: cfg.BaseLat, Lon: cfg.BaseLon}},
		Logger:       logger,
		SupportPhone: cfg.SupportPhone,
	}

	srv := httpapi.NewServer(svc, geocoder, feed, httpapi.ParsePresets(cfg.PresetLocations), logger)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("agent-assist listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func runMigrations(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	b, err := os.ReadFile(filepath.Join("migrations", "001_create_orders.sql"))
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}
