//-------------------------------------------------------------------------
//
// Retail Data Warehouse ETL
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for retaildw.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/retaildw/retaildw/internal/config"
	"github.com/retaildw/retaildw/internal/logging"
	"github.com/retaildw/retaildw/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	dataDir    string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "retaildw",
		Short: "Retail data warehouse ETL pipeline",
		Long: `retaildw restructures flat retail transaction files (customers,
products, orders, order line items) into a dimensional star-schema model
in PostgreSQL: conformed dimension tables with surrogate keys and a sales
fact table carrying derived financial metrics.

A typical session:

  retaildw generate                    # write synthetic source CSV files
  retaildw init --connection "..."     # provision the warehouse schema
  retaildw run  --connection "..."     # extract, transform, full-refresh load`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./retaildw.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"directory holding the source CSV files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
