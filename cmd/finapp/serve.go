package main

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"finapp/internal/api"
	"finapp/internal/cache"
	"finapp/internal/cli"
	"finapp/internal/config"
	"finapp/internal/events"
	apphttp "finapp/internal/http"
	applog "finapp/internal/log"
	"finapp/internal/session"
)

const (
	shutdownTimeout = 30 * time.Second
	cleanupInterval = 5 * time.Minute
)

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cli.SignalContext(cmd.Context(), logger)
			defer cancel()
			return runServer(ctx, cfg, logger)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, logger *applog.Logger) error {
	caches := cache.NewManager(logger.WithComponent(applog.ComponentCache).Logger)
	sessions := session.NewStore(session.Config{
		TTL:          cfg.SessionTTL,
		MaxSessions:  cfg.SessionMax,
		SecureCookie: cfg.SecureCookie,
	}, caches)

	backend := api.NewClient(cfg.APIBase,
		api.WithLogger(logger.WithComponent(applog.ComponentAPIClient).Logger))

	publisher := newPublisher(cfg, logger)
	dispatcher := events.NewDispatcher(publisher, cfg.EventQueueSize,
		logger.WithComponent(applog.ComponentEvents).Logger)

	srv, err := apphttp.NewServer(":"+cfg.Port, apphttp.Dependencies{
		Backend:  backend,
		Sessions: sessions,
		Events:   dispatcher,
		Caches:   caches,
		Logger:   logger,
	}, apphttp.Options{RateLimitPerMinute: cfg.RateLimitPerMinute})
	if err != nil {
		return err
	}

	var stopping atomic.Bool
	srv.SetReadiness(func() bool { return !stopping.Load() })

	caches.StartCleanup(cleanupInterval)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return dispatcher.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("Starting finapp server",
			"port", cfg.Port,
			"api_base", cfg.APIBase,
			"events", cfg.EventsEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		stopping.Store(true)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		return nil
	})

	err = g.Wait()

	sent, failed, dropped := dispatcher.Stats()
	if cerr := publisher.Close(); cerr != nil {
		logger.Warn("Closing event publisher failed", applog.FieldError, cerr)
	}
	logger.Info("Server stopped gracefully",
		"events_sent", sent, "events_failed", failed, "events_dropped", dropped)
	return err
}

// newPublisher connects to the broker when events are enabled. A broker that
// is down at startup disables events rather than the UI.
func newPublisher(cfg *config.Config, logger *applog.Logger) events.Publisher {
	if !cfg.EventsEnabled() {
		return events.Noop{}
	}
	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		logger.Warn("AMQP unavailable, submission events disabled",
			applog.FieldComponent, applog.ComponentEvents, applog.FieldError, err)
		return events.Noop{}
	}
	logger.Info("Publishing submission events",
		"exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
	return client
}
