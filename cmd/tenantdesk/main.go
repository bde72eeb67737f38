package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/expire"
	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/migrate"
	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/seed"
	"github.com/orris-inc/tenantdesk/internal/interfaces/cli/server"
	"github.com/orris-inc/tenantdesk/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tenantdesk",
		Short:         "Tenantdesk - multi-tenant service administration",
		Long:          `Tenantdesk manages departments, resellers, service packages and subscriptions behind a role based API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		expire.NewCommand(),
		newVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tenantdesk %s\n", version.String())
		},
	}
}
