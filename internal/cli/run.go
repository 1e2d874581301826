package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/internal/pipeline"
	"github.com/retaildw/retaildw/internal/source"
	"github.com/retaildw/retaildw/internal/warehouse"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ETL pipeline",
	Long: `Run one full-refresh pipeline invocation: extract the four source
CSV files, build the dimensional model, and replace the warehouse content
in a single transaction. Order items whose parent order is missing are
dropped with a warning; any other failure aborts the run and leaves the
previous warehouse generation untouched.

Example:
  retaildw run --data-dir ./data --connection "postgres://..."`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := warehouse.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	p := pipeline.New(source.NewReader(cfg.DataDir), warehouse.New(pool))

	summary, err := p.Run(ctx)
	if err != nil {
		return err
	}

	logging.Info().
		Int("orders", summary.Orders).
		Int("order_items", summary.OrderItems).
		Int("dim_date", summary.DateRows).
		Int("dim_customer", summary.Customers).
		Int("dim_product", summary.Products).
		Int("fact_sales", summary.FactRows).
		Int("skipped_items", summary.SkippedItems).
		Msg("Warehouse refresh complete")

	return nil
}
