// Package app wires together all dependencies and runs the seller console.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/bazaarly/sellerconsole/internal/ai"
	"github.com/bazaarly/sellerconsole/internal/auth"
	"github.com/bazaarly/sellerconsole/internal/config"
	"github.com/bazaarly/sellerconsole/internal/event"
	handler "github.com/bazaarly/sellerconsole/internal/handler/http"
	"github.com/bazaarly/sellerconsole/internal/session"
	"github.com/bazaarly/sellerconsole/pkg/health"
	pkgkafka "github.com/bazaarly/sellerconsole/pkg/kafka"
	"github.com/bazaarly/sellerconsole/pkg/tracing"
)

// App holds the running service and its shutdown hooks.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates the application, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "seller-console",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Kafka producer with connection validation and retry. The console keeps
	// serving when brokers are down; events are dropped with a warning.
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	kafkaUp := true
	if err := pingKafkaWithRetry(ctx, producer, logger); err != nil {
		kafkaUp = false
		logger.Warn("kafka producer ping failed after retries, continuing in degraded mode",
			slog.String("error", err.Error()),
		)
	} else {
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	var events *event.Producer
	if kafkaUp {
		events = event.NewProducer(producer, logger)
	} else {
		events = event.NewProducer(nil, logger)
	}

	// AI enrichment collaborator.
	var aiClient ai.Client
	if cfg.AIStub {
		logger.Info("using stub AI client")
		aiClient = &ai.StubClient{Delay: 200 * time.Millisecond}
	} else {
		aiClient = ai.NewGeminiClient(ai.GeminiConfig{
			BaseURL: cfg.AIBaseURL,
			APIKey:  cfg.AIAPIKey,
			Model:   cfg.AIModel,
		}, logger)
	}

	// Build the dependency graph.
	authService := auth.NewService(auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry()))
	sessions := session.NewManager(aiClient, events, cfg.EnrichmentTimeout(), logger)

	// Health checks. Kafka is best-effort, so its check never fails readiness.
	healthHandler := health.NewHandler()
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	router := handler.NewRouter(handler.RouterConfig{
		Auth:        authService,
		Sessions:    sessions,
		Events:      events,
		Health:      healthHandler,
		EnrichRPS:   cfg.EnrichRateRPS,
		EnrichBurst: cfg.EnrichRateBurst,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * cfg.EnrichmentTimeout(),
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: drain HTTP, flush spans, then
// close the Kafka producer.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("shutdown complete")
	return errors.Join(errs...)
}

// pingKafkaWithRetry pings the brokers a few times with jittered backoff
// before giving up and letting the app run degraded.
func pingKafkaWithRetry(ctx context.Context, producer *pkgkafka.Producer, logger *slog.Logger) error {
	const attempts = 3

	var err error
	for i := 0; i < attempts; i++ {
		if err = producer.Ping(ctx); err == nil {
			return nil
		}
		if i < attempts-1 {
			wait := time.Duration(1<<uint(i))*time.Second + time.Duration(rand.IntN(500))*time.Millisecond
			logger.Warn("kafka ping failed, retrying",
				slog.Int("attempt", i+1),
				slog.Duration("backoff", wait),
				slog.String("error", err.Error()),
			)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}
