package cli

import (
	"fmt"

	"github.com/SscSPs/closing_tracker/pkg/database"
	"github.com/spf13/cobra"
)

// migrateFunc is swapped in tests.
var migrateFunc = database.Migrate

func (c *CLI) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}
	cmd.AddCommand(c.newMigrateDirectionCmd(database.MigrateUp, "Apply all pending migrations"))
	cmd.AddCommand(c.newMigrateDirectionCmd(database.MigrateDown, "Roll back every migration"))
	return cmd
}

func (c *CLI) newMigrateDirectionCmd(direction database.MigrateDirection, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMigrate(direction)
		},
	}
}

func (c *CLI) runMigrate(direction database.MigrateDirection) error {
	if c.cfg.StorageBackend == "memory" {
		return usageError{fmt.Errorf("migrations need the postgres backend")}
	}
	if c.cfg.DatabaseURL == "" {
		return usageError{fmt.Errorf("PGSQL_URL is not set")}
	}
	changed, err := migrateFunc(c.cfg.DatabaseURL, direction)
	if err != nil {
		return err
	}
	if changed {
		c.printf("Migrations %s applied.\n", direction)
	} else {
		c.printf("No migrations to apply.\n")
	}
	return nil
}
