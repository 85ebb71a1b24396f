package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/api"
	"github.com/sana-health/sana/internal/config"
	"github.com/sana-health/sana/internal/db"
	"github.com/sana-health/sana/internal/logging"
	"github.com/sana-health/sana/internal/security"
	"github.com/sana-health/sana/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sana",
		Short:         "Sana wellness backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newResetPasswordCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServer()
		},
	}
}

func newResetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Issue a temporary password for a locked-out user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			database, err := db.OpenSQLite(cfg.DB.Path)
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}

			temporaryPassword, err := security.TemporaryPassword(16)
			if err != nil {
				return err
			}

			repositories := db.NewRepositories(database)
			authService := services.NewAuthService(repositories.Users)
			if err := authService.ResetPassword(args[0], temporaryPassword); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"temporary password for %s: %s\nthe user must change it on next login\n",
				args[0], temporaryPassword)
			return nil
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	location := cfg.Location()
	time.Local = location

	database, err := db.OpenSQLite(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler := api.NewHandler(database, cfg, logger)

	app := fiber.New(fiber.Config{
		AppName:               "Sana",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	scheduler := services.NewReminderScheduler(
		db.NewRepositories(database).Medicines, logger, cfg.Reminders.Interval, location,
	)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	scheduler.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("sana listening",
		zap.String("addr", cfg.ListenAddr()),
		zap.String("db", cfg.DB.Path),
		zap.String("tz", location.String()),
	)
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
