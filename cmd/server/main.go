package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ad-tracker/videoshelf-go/internal/config"
	"github.com/ad-tracker/videoshelf-go/internal/db"
	"github.com/ad-tracker/videoshelf-go/internal/db/repository"
	"github.com/ad-tracker/videoshelf-go/internal/handler"
	"github.com/ad-tracker/videoshelf-go/internal/metrics"
	"github.com/ad-tracker/videoshelf-go/internal/service"
	"github.com/ad-tracker/videoshelf-go/internal/validation"
	"github.com/ad-tracker/videoshelf-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "videoshelf: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close(pool)

	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
		zap.Int32("max_conns", pool.Config().MaxConns),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Publishing is optional; a nil publisher and a nil broker keep both paths off.
	var publisher service.EventPublisher
	var broker handler.BrokerHealth
	if cfg.RabbitMQ.Enabled {
		mp, err := service.NewMessagePublisher(&cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer func() {
			if err := mp.Close(); err != nil {
				log.Warn("Failed to close RabbitMQ publisher", zap.Error(err))
			}
		}()
		publisher = mp
		broker = mp
		log.Info("Publishing video events",
			zap.String("exchange", cfg.RabbitMQ.Exchange),
			zap.String("routing_key", cfg.RabbitMQ.RoutingKey),
		)
	}

	repo := repository.NewVideoRepository(pool)
	videos := service.NewVideoService(repo, validation.New(), publisher, m)

	router, err := handler.NewRouter(
		handler.NewVideoHandler(videos, handler.NewCookieStore(cfg.Session.Secret), cfg.Session.Name),
		handler.NewHealthHandler(repo, broker),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", server.Addr), zap.String("mode", cfg.Server.Mode))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				log.Error("Failed to close server", zap.Error(err))
			}
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
