package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/placarvendas/placar/internal/adapters/http/api"
	"github.com/placarvendas/placar/internal/adapters/upstream"
	"github.com/placarvendas/placar/internal/app"
	"github.com/placarvendas/placar/internal/config"
	"github.com/placarvendas/placar/internal/notify"
	"github.com/placarvendas/placar/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	authTimeout       = 15 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry carries
	// only the service's own metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	gateway := buildGateway(ctx, cfg, log)

	var notifier *notify.Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewNotifier([]notify.Sender{notify.NewWebhookSender(cfg.WebhookURL)}, logger.Named("notify"))
	}

	svc := app.New(
		app.WithSource(gateway),
		app.WithNotifier(notifier),
		app.WithTeams(cfg.Teams),
		app.WithPhotos(cfg.Photos),
		app.WithPollInterval(cfg.PollInterval()),
		app.WithDefaultPeriod(cfg.DefaultPeriod),
		app.WithLogger(logger.Named("app")),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildGateway assembles the data source. Without an access key the
// gateway is synthetic-only; with one, the optional app-level credentials
// are exchanged for a token up front (failure leaves app endpoints unused).
func buildGateway(ctx context.Context, cfg *config.Config, log logger.Logger) *upstream.Gateway {
	opts := []upstream.Option{
		upstream.WithTeams(cfg.Teams),
		upstream.WithDefaultPhotoURL(cfg.DefaultPhotoURL),
		upstream.WithPageSize(cfg.PageSize),
		upstream.WithMaxPages(cfg.MaxPages),
		upstream.WithSyntheticOnly(cfg.UseSynthetic),
		upstream.WithLogger(logger.Named("upstream")),
	}

	if cfg.UpstreamAPIKey == "" {
		log.Info(ctx, "no upstream access key; serving synthetic data")
		return upstream.New(opts...)
	}

	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey)
	if cfg.UpstreamUser != "" && cfg.UpstreamPassword != "" {
		authCtx, cancel := context.WithTimeout(ctx, authTimeout)
		defer cancel()
		if err := client.Authenticate(authCtx, cfg.UpstreamUser, cfg.UpstreamPassword); err != nil {
			log.Warn(ctx, "upstream auth failed; app-level endpoints disabled", logger.Error(err))
		}
	}
	return upstream.New(append(opts, upstream.WithClient(client))...)
}
