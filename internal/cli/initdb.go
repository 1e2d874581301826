package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/warehouse"
)

var initDropExisting bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the warehouse schema",
	Long: `Create the warehouse tables (dim_date, dim_customer, dim_product,
dim_channel, fact_sales) in PostgreSQL and seed the channel dimension.
Provisioning is idempotent; use --drop-existing to start from scratch.

Example:
  retaildw init --connection "postgres://..." --drop-existing`,
	RunE: runInitDB,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing warehouse tables before creating them")
}

func runInitDB(cmd *cobra.Command, args []string) error {
	if initDropExisting {
		cfg.Init.DropExisting = true
	}

	if err := cfg.ValidateInit(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := warehouse.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	store := warehouse.New(pool)

	if cfg.Init.DropExisting {
		logging.Warn().Msg("Dropping existing warehouse tables")
		if err := store.DropSchema(ctx); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logging.Info().Msg("Warehouse schema ready")
	return nil
}
