package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/podcast-catalog/pkg/config"
	"github.com/killallgit/podcast-catalog/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	appConfig  *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Podcast Catalog",
	Long: `Podcast Catalog - browse a podcast catalog by genre and order

Serves the catalog as an HTML page and a JSON API, and prints it from the
command line.

Features:
  • Genre filter and three sort orders (recently updated, newest, most popular)
  • Detail view with seasons and episode counts
  • Catalog data from the built-in file, a YAML file or a SQLite database`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config/settings.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.json", rootCmd.PersistentFlags().Lookup("json-logs"))
}

// loadConfig reads the configuration and sets up logging before any
// command that needs them runs
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.Load(viper.GetViper(), configFile)
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	if err := logging.Init(cfg.Logging.Level, cfg.Logging.JSON); err != nil {
		return err
	}

	appConfig = cfg
	logging.Debug().
		Str("environment", cfg.Environment).
		Str("dataset_source", cfg.Dataset.Source).
		Msg("configuration loaded")
	return nil
}
