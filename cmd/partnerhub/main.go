package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/directory"
	"github.com/spec-kit/partner-hub/internal/events"
	"github.com/spec-kit/partner-hub/internal/observability"
	"github.com/spec-kit/partner-hub/internal/provider"
	"github.com/spec-kit/partner-hub/internal/service"
	"github.com/spec-kit/partner-hub/internal/session"
	"github.com/spec-kit/partner-hub/internal/worker"
)

// Composition root for the headless client core: everything a UI shell
// needs is constructed once here and injected, never reached as a global.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := events.NewInMemoryDispatcher()

	seed, err := directory.SeedFromConfig(cfg.Directory)
	if err != nil {
		logger.Fatal("failed to seed business directory", zap.Error(err))
	}
	dir := directory.NewInMemoryDirectory(seed)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	providerClient := provider.NewHTTPClient(cfg.Provider, dispatcher, logger)
	authSession := session.NewAuthSession(cfg.Provider, providerClient, dispatcher, logger)
	authSession.Start(ctx)
	defer authSession.Close()

	businessSession := session.NewBusinessSession(dir, cfg.Session.CurrentUserID, dispatcher, logger)

	logger.Info("partner hub core ready",
		zap.String("env", cfg.App.Env),
		zap.Bool("provider_configured", cfg.Provider.Configured()),
		zap.String("selected_business", businessSession.SelectedBusinessID()),
		zap.String("active_role", string(businessSession.ActiveRole())))

	waitForShutdown(logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
