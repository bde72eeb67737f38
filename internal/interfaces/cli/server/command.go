package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/database"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/migration"
	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/bootstrap"
	httpapi "github.com/orris-inc/tenantdesk/internal/interfaces/http"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	"github.com/orris-inc/tenantdesk/internal/shared/goroutine"
	"github.com/orris-inc/tenantdesk/internal/shared/version"
)

var (
	env                string
	verbose            bool
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Tenantdesk API server with the configuration for the given environment.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log source locations for every level")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Load(env, verbose)
	if err != nil {
		return err
	}
	cfg := rt.Config
	log := rt.Log

	log.Infow("starting server",
		"environment", rt.Env,
		"version", version.String(),
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := rt.OpenDatabase(); err != nil {
		return err
	}
	defer rt.CloseDatabase()

	if err := handleMigrations(rt); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warnw("failed to close redis client", "error", err)
			}
		}()
	}

	container, err := httpapi.NewContainer(database.Get(), redisClient, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	container.Start()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		container.Shutdown(context.Background())
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	container.Shutdown(shutdownCtx)

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(rt *bootstrap.Runtime) error {
	log := rt.Log
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	driver := rt.Config.Database.Driver
	if autoMigrate {
		if rt.Env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production")
		}
		manager, err := migration.NewManager(rt.Env, driver, log)
		if err != nil {
			return err
		}
		return manager.Migrate(database.Get())
	}

	strategy, err := migration.NewGooseStrategy(driver, log)
	if err != nil {
		log.Warnw("cannot check migration status", "error", err)
		return nil
	}
	pending, err := strategy.Pending(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	if len(pending) > 0 {
		log.Warnw("database has pending migrations, run `tenantdesk migrate up`", "pending", pending)
	}
	return nil
}
