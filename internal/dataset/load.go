package dataset

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Source selects where the dataset is read from
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceFile     Source = "file"
	SourceSQLite   Source = "sqlite"
)

// Options configures Load
type Options struct {
	Source Source
	// Path is the YAML file for SourceFile
	Path string
	// DB is the database for SourceSQLite
	DB *gorm.DB
}

// Load reads the dataset from the configured source
func Load(ctx context.Context, opts Options) (*Dataset, error) {
	switch opts.Source {
	case SourceEmbedded, "":
		return LoadEmbedded()
	case SourceFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("dataset source %q requires a path", opts.Source)
		}
		return LoadFile(opts.Path)
	case SourceSQLite:
		if opts.DB == nil {
			return nil, fmt.Errorf("dataset source %q requires a database", opts.Source)
		}
		return NewStore(opts.DB).Load(ctx)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", opts.Source)
	}
}
