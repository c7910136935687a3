package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nuuxixv/MindConnect/internal/config"
	"github.com/nuuxixv/MindConnect/internal/database"
	"github.com/nuuxixv/MindConnect/internal/logging"
	"github.com/nuuxixv/MindConnect/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// @title           MindConnect API
// @version         1.0
// @description     Family psychological self-assessment: tests, results, profiles and community
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name mc_session

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = time.Hour
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "mindconnect",
		Short:         "MindConnect API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, _, err := bootstrap(configPath)
				return err
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the bundled test catalog when no tests exist",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSeed(cmd, configPath)
			},
		},
	)
	return root
}

// bootstrap loads config, installs the logger and opens a migrated database.
func bootstrap(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(db, log); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runSeed(cmd *cobra.Command, configPath string) error {
	_, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	catalog, err := database.DefaultCatalog()
	if err != nil {
		return err
	}
	seeded, err := database.Seed(cmd.Context(), db, catalog)
	if err != nil {
		return err
	}
	if seeded {
		cmd.Println("Seeded")
	} else {
		cmd.Println("Already seeded")
	}
	return nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	log := slog.Default()

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := server.New(cfg, db, log, server.Options{})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, app, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "oidc", cfg.OIDC.Enabled(), "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func sweepSessions(ctx context.Context, app *server.App, log *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.Sessions.Sweep(ctx)
			if err != nil {
				log.Warn("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("expired sessions removed", "count", n)
			}
		}
	}
}
