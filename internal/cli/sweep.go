package cli

import (
	"github.com/SscSPs/closing_tracker/internal/core/services"
	"github.com/spf13/cobra"
)

func (c *CLI) newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Mark scheduled payments past their due date as overdue",
		Long: `Runs one overdue sweep over every active transaction, the same pass
the server performs on OVERDUE_SWEEP_INTERVAL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.adminContext(cmd.Context())
			rt, err := c.openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			n, err := services.NewOverdueSweeper(rt.Services.Payment, 0).RunOnce(ctx)
			c.printf("Marked %d payment(s) overdue.\n", n)
			return err
		},
	}
}
