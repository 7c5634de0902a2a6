package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zhima-Mochi/streetsmart/internal/bootstrap"
	"github.com/Zhima-Mochi/streetsmart/internal/config"
	infraobs "github.com/Zhima-Mochi/streetsmart/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/observability/tracing"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/outbox"
	speechinfra "github.com/Zhima-Mochi/streetsmart/internal/infrastructure/speech"
	"github.com/Zhima-Mochi/streetsmart/internal/pkg/logging"
	"github.com/Zhima-Mochi/streetsmart/internal/presentation/grpchealth"
	httppresentation "github.com/Zhima-Mochi/streetsmart/internal/presentation/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config_invalid", zap.Error(err))
	}

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env, cfg.LogFile)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.ServiceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		systemLogger.Error("tracing_setup_failed", zap.Error(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			systemLogger.Error("tracing_shutdown_error", zap.Error(err))
		}
	}()

	logger := zaplogger.New(baseLogger)
	tel := infraobs.NewWithRegistry(oteltrace.New(cfg.ServiceName), logger, prometrics.New(nil, "", ""))

	// In-memory event bus fanning re-render signals out to the event stream.
	bus := outbox.NewBus(logger, tel)
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	speaker := speechinfra.NewLogSpeaker(logger)
	app, err := bootstrap.New(ctx, cfg, bootstrap.Deps{
		Tel:       tel,
		Publisher: bus,
		Speaker:   speaker,
	})
	if err != nil {
		systemLogger.Fatal("bootstrap_failed", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			systemLogger.Error("store_close_error", zap.Error(err))
		}
	}()

	events := httppresentation.NewEventStream(bus, logger, tel)
	handler := httppresentation.NewHandler(httppresentation.Services{
		Inventory: app.Inventory,
		Ledger:    app.Ledger,
		Payments:  app.Payments,
		Assistant: app.Assistant,
		Voice:     app.Voice,
		Theme:     app.Theme,
		Speaker:   speaker,
	}, events, logger, tel)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	server.RegisterOnShutdown(events.Close)

	var health *grpchealth.Server
	if cfg.GRPCAddr != "" {
		health, err = grpchealth.New(cfg.GRPCAddr, cfg.ServiceName, logger)
		if err != nil {
			systemLogger.Fatal("grpc_listen_failed", zap.Error(err))
		}
		go func() {
			if err := health.Serve(ctx); err != nil {
				systemLogger.Error("grpc_server_error", zap.Error(err))
			}
		}()
	}

	go func() {
		systemLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
			zap.String("store", cfg.StoreDriver),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error",
				zap.Error(err),
			)
			stop()
		}
	}()

	<-ctx.Done()

	if health != nil {
		health.SetServing(false)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		systemLogger.Info("http_server_stopped")
	}
}
