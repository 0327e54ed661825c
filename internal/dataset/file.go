package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/killallgit/podcast-catalog/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// Document is the on-disk layout of a dataset file
type Document struct {
	Genres   []models.Genre        `yaml:"genres"`
	Podcasts []models.Podcast      `yaml:"podcasts"`
	Seasons  []models.SeasonDetail `yaml:"seasons"`
}

// Decode reads a YAML dataset document
func Decode(r io.Reader) (*Dataset, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(nil, nil, nil)
		}
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return doc.Dataset()
}

// Dataset converts the document into a validated Dataset
func (doc Document) Dataset() (*Dataset, error) {
	seasons := make(map[string][]models.Season, len(doc.Seasons))
	for _, detail := range doc.Seasons {
		seasons[detail.PodcastID] = append(seasons[detail.PodcastID], detail.Seasons...)
	}
	return New(doc.Podcasts, doc.Genres, seasons)
}

// LoadEmbedded returns the dataset compiled into the binary
func LoadEmbedded() (*Dataset, error) {
	return Decode(bytes.NewReader(embeddedCatalog))
}

// LoadFile reads a dataset from a YAML file
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
