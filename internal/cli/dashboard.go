package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <transaction-id>",
		Short: "Print a transaction's dashboard as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.adminContext(cmd.Context())
			rt, err := c.openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			dashboard, err := rt.Services.Dashboard.BuildDashboard(ctx, args[0], c.actor)
			if err != nil {
				return err
			}
			return c.outputJSON(dashboard)
		},
	}
}
