package expire

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/tenantdesk/internal/application/subscription/usecases"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/database"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/repository"
	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

var env string

// NewCommand runs the subscription expiry sweep once, for deployments that
// schedule it outside the server.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expire",
		Short: "Expire subscriptions past their end date",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Load(env, false)
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

	log := rt.Log.Named("expiry")
	uc := usecases.NewExpireSubscriptionsUseCase(repository.NewSubscriptionRepository(database.Get(), log), metrics.New(), log)
	count, err := uc.Execute(ctx)
	if err != nil {
		return fmt.Errorf("expiry sweep failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Expired %d subscription(s)\n", count)
	return nil
}
