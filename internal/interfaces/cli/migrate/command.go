package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/database"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/migration"
	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the versioned schema migrations embedded in the binary.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

// initEnv loads the runtime, connects the database and picks the goose
// scripts for the configured driver.
func initEnv() (*bootstrap.Runtime, *migration.GooseStrategy, error) {
	rt, err := bootstrap.Load(env, false)
	if err != nil {
		return nil, nil, err
	}

	strategy, err := migration.NewGooseStrategy(rt.Config.Database.Driver, rt.Log)
	if err != nil {
		return nil, nil, err
	}

	if err := rt.OpenDatabase(); err != nil {
		return nil, nil, err
	}
	return rt, strategy, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer rt.CloseDatabase()

	rt.Log.Infow("running up migrations", "environment", rt.Env)

	if err := migration.NewManagerWithStrategy(strategy, rt.Log).Migrate(database.Get()); err != nil {
		return err
	}

	rt.Log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	rt, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer rt.CloseDatabase()

	if rt.Env == constants.EnvProduction {
		rt.Log.Warnw("rolling back migrations in production", "steps", steps)
	}
	rt.Log.Infow("running down migrations", "environment", rt.Env, "steps", steps)

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		rt.Log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer rt.CloseDatabase()

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	pending, err := strategy.Pending(database.Get())
	if err != nil {
		return fmt.Errorf("failed to list pending migrations: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", rt.Env)
	fmt.Fprintf(out, "  Driver:          %s\n", rt.Config.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", version)
	fmt.Fprintf(out, "  Pending:         %v\n", pending)
	return nil
}
