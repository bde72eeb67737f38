// Package bootstrap prepares configuration, logging and the database for the
// CLI commands.
package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/config"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/database"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// Runtime is what every command needs after startup.
type Runtime struct {
	Env    string
	Config *config.Config
	Log    logger.Interface
}

// Load resolves the environment (the ENV variable wins over the flag), reads
// the configuration and initializes the logger and business timezone.
func Load(env string, verbose bool) (*Runtime, error) {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}
	env = NormalizeEnv(env)

	cfg, err := config.Load(GinMode(env))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, verbose); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return &Runtime{Env: env, Config: cfg, Log: logger.NewLogger()}, nil
}

// OpenDatabase connects the process wide database handle. Pair it with
// CloseDatabase.
func (r *Runtime) OpenDatabase() error {
	if err := database.Init(&r.Config.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

func (r *Runtime) CloseDatabase() {
	if err := database.Close(); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
}

// NormalizeEnv folds the short environment aliases into their full names.
func NormalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", constants.EnvProduction, "release":
		return constants.EnvProduction
	case "testing", constants.EnvTest:
		return constants.EnvTest
	default:
		return constants.EnvDevelopment
	}
}

// GinMode maps an environment name to the matching gin mode.
func GinMode(env string) string {
	switch NormalizeEnv(env) {
	case constants.EnvProduction:
		return "release"
	case constants.EnvTest:
		return "test"
	default:
		return "debug"
	}
}
