package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/earshot/internal/classifier"
	"github.com/fyrsmithlabs/earshot/internal/collector"
	"github.com/fyrsmithlabs/earshot/internal/config"
	"github.com/fyrsmithlabs/earshot/internal/events"
	"github.com/fyrsmithlabs/earshot/internal/logging"
	"github.com/fyrsmithlabs/earshot/internal/server"
	"github.com/fyrsmithlabs/earshot/internal/store"
	"github.com/fyrsmithlabs/earshot/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the feedback collection daemon",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tel, err := telemetry.New(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	st, err := store.New(cfg, logger.Named("store"))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	policy, watcher, err := loadPolicy(cfg, logger)
	if err != nil {
		return err
	}
	if watcher != nil {
		defer func() { _ = watcher.Close() }()
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		p, err := events.NewNATSPublisher(cfg.Events.URL, cfg.Events.SubjectPrefix, logger.Named("events"))
		if err != nil {
			return err
		}
		publisher = p
	}
	defer publisher.Close()

	svc, err := collector.NewService(st, policy, publisher, logger.Named("collector"))
	if err != nil {
		return err
	}

	srv, err := server.NewServer(svc, logger.Named("http"), cfg.Server)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// loadPolicy builds the classification policy handle from config, optionally
// watching the policy file for changes.
func loadPolicy(cfg *config.Config, logger *zap.Logger) (*classifier.Handle, *classifier.Watcher, error) {
	policy := classifier.DefaultPolicy()
	if cfg.Classifier.PolicyPath != "" {
		p, err := classifier.LoadPolicy(cfg.Classifier.PolicyPath)
		if err != nil {
			return nil, nil, err
		}
		policy = p
	}

	handle := classifier.NewHandle(policy)
	if !cfg.Classifier.Watch {
		return handle, nil, nil
	}

	watcher, err := classifier.NewWatcher(handle, cfg.Classifier.PolicyPath, logger.Named("classifier"))
	if err != nil {
		return nil, nil, err
	}
	return handle, watcher, nil
}
