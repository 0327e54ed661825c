package cmd

import (
	"context"
	"fmt"

	"github.com/killallgit/podcast-catalog/api/types"
	"github.com/killallgit/podcast-catalog/internal/database"
	"github.com/killallgit/podcast-catalog/internal/dataset"
	"github.com/killallgit/podcast-catalog/pkg/config"
	apperrors "github.com/killallgit/podcast-catalog/pkg/errors"
	"github.com/killallgit/podcast-catalog/pkg/logging"
)

// buildDependencies loads the dataset named by cfg and wires the handler
// dependencies. The returned func closes the database, if one was opened.
func buildDependencies(ctx context.Context, cfg *config.Config) (*types.Dependencies, func(), error) {
	closer := func() {}

	opts := dataset.Options{
		Source: dataset.Source(cfg.Dataset.Source),
		Path:   cfg.Dataset.Path,
	}

	var db *database.DB
	if cfg.Dataset.Source == config.SourceSQLite {
		var err error
		db, err = database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
		if err != nil {
			return nil, closer, apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "failed to open database")
		}
		closer = func() {
			if err := db.Close(); err != nil {
				logging.Warn().Err(err).Msg("failed to close database")
			}
		}
		opts.DB = db.DB
	}

	ds, err := dataset.Load(ctx, opts)
	if err != nil {
		closer()
		return nil, func() {}, apperrors.DatasetError(cfg.Dataset.Source, err)
	}

	logging.Info().
		Str("source", cfg.Dataset.Source).
		Int("podcasts", ds.Len()).
		Int("genres", len(ds.Genres())).
		Msg("dataset loaded")

	deps := types.NewDependencies(ds, *logging.GlobalLogger())
	deps.Config = cfg
	deps.DB = db
	deps.Build = types.BuildInfo{
		Name:      "podcast-catalog",
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
	return deps, closer, nil
}

func requireConfig() (*config.Config, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return appConfig, nil
}
