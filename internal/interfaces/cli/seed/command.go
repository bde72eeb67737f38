package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/database"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/seeds"
	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load root administrators and service packages",
		Long: `Insert the root administrators and service packages listed in a YAML seed
file. Existing users (by email) and packages (by name) are left as they are.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "configs/seed.yaml", "Path to the seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Load(env, false)
	if err != nil {
		return err
	}

	f, err := seeds.Load(file)
	if err != nil {
		return err
	}

	if err := rt.OpenDatabase(); err != nil {
		return err
	}
	defer rt.CloseDatabase()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	hasher := auth.NewBcryptPasswordHasher(rt.Config.Auth.Password.BcryptCost)
	res, err := seeds.Apply(ctx, database.Get(), f, hasher)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	rt.Log.Infow("seed applied", "file", file, "root_admins", res.Admins, "packages", res.Packages)
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d root admin(s) and %d package(s)\n", res.Admins, res.Packages)
	return nil
}
