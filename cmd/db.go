package cmd

import (
	"fmt"

	"github.com/killallgit/podcast-catalog/internal/database"
	"github.com/killallgit/podcast-catalog/internal/dataset"
	apperrors "github.com/killallgit/podcast-catalog/pkg/errors"
	"github.com/killallgit/podcast-catalog/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dbCmd groups the database commands
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the catalog database",
	Long: `Manage the SQLite database used by the "sqlite" dataset source.

Available subcommands:
  seed    - Create the tables and copy a catalog into them
  status  - Show the row count of each table`,
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database from a catalog file",
	Long: `Create the catalog tables and write every genre, podcast and season
into them. Rows with the same key are replaced.

The catalog is read from --file when given, otherwise from the built-in
catalog.

Example:
  catalog db seed
  catalog db seed --file ./catalog.yaml --database ./data/catalog.db`,
	RunE: runDBSeed,
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database status",
	RunE:  runDBStatus,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbSeedCmd)
	dbCmd.AddCommand(dbStatusCmd)

	dbCmd.PersistentFlags().String("database", "", "database file (overrides config)")
	_ = viper.BindPFlag("database.path", dbCmd.PersistentFlags().Lookup("database"))

	dbSeedCmd.Flags().String("file", "", "catalog YAML file to seed from (default built-in catalog)")
}

func openStore() (*database.DB, *dataset.Store, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "failed to open database")
	}
	return db, dataset.NewStore(db.DB), nil
}

func runDBSeed(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	opts := dataset.Options{Source: dataset.SourceEmbedded}
	if file != "" {
		opts = dataset.Options{Source: dataset.SourceFile, Path: file}
	}

	ds, err := dataset.Load(cmd.Context(), opts)
	if err != nil {
		return apperrors.DatasetError(string(opts.Source), err)
	}

	db, store, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(cmd.Context()); err != nil {
		return apperrors.DatabaseError("migrate", err)
	}
	if err := store.Seed(cmd.Context(), ds); err != nil {
		return apperrors.DatabaseError("seed", err)
	}

	logging.Info().
		Str("source", string(opts.Source)).
		Int("podcasts", ds.Len()).
		Msg("database seeded")

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d %s and %d %s\n",
		ds.Len(), plural(ds.Len(), "podcast", "podcasts"),
		len(ds.Genres()), plural(len(ds.Genres()), "genre", "genres"))
	return nil
}

func runDBStatus(cmd *cobra.Command, args []string) error {
	db, store, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if err := db.HealthCheck(cmd.Context()); err != nil {
		fmt.Fprintf(out, "Database: unhealthy (%v)\n", err)
		return err
	}

	if err := store.Migrate(cmd.Context()); err != nil {
		return apperrors.DatabaseError("migrate", err)
	}
	counts, err := store.Counts(cmd.Context())
	if err != nil {
		return apperrors.DatabaseError("count", err)
	}

	fmt.Fprintln(out, "Database: healthy")
	fmt.Fprintf(out, "Podcasts: %d\n", counts.Podcasts)
	fmt.Fprintf(out, "Genres:   %d\n", counts.Genres)
	fmt.Fprintf(out, "Seasons:  %d\n", counts.Seasons)
	return nil
}
