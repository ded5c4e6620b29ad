package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/aggregate"
	"github.com/dtnitsch/policy-engagement/pkg/records"
	"github.com/dtnitsch/policy-engagement/pkg/storage"
	"github.com/dtnitsch/policy-engagement/pkg/tabular"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
	"github.com/urfave/cli/v2"
)

// Settings is the resolved configuration shared by every command.
type Settings struct {
	Config    models.Config
	Taxonomy  models.Taxonomy
	MatchMode models.MatchMode
	Logger    *slog.Logger
	Storage   *storage.Storage
}

// NewLogger returns the JSON stderr logger; --quiet limits it to errors.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads --config when given and applies explicitly set flags on top.
func LoadConfig(c *cli.Context) (models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = models.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}

	if c.IsSet("taxonomy") {
		cfg.TaxonomyPath = c.String("taxonomy")
	}
	if c.IsSet("match") {
		cfg.MatchMode = c.String("match")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("top") {
		cfg.TopN = c.Int("top")
	}
	if c.IsSet("out-dir") {
		cfg.OutputDir = c.String("out-dir")
	}
	return cfg, nil
}

// Setup resolves config, taxonomy and match mode. The taxonomy is validated
// here so an invalid one fails before any input is read.
func Setup(c *cli.Context) (*Settings, error) {
	logger := NewLogger(c)

	cfg, err := LoadConfig(c)
	if err != nil {
		return nil, err
	}

	mode, err := models.ParseMatchMode(cfg.MatchMode)
	if err != nil {
		return nil, err
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		tax, err = taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded taxonomy", "path", cfg.TaxonomyPath, "categories", len(tax.Categories), "tags", len(tax.Tags))
	}

	return &Settings{
		Config:    cfg,
		Taxonomy:  tax,
		MatchMode: mode,
		Logger:    logger,
		Storage:   &storage.Storage{},
	}, nil
}

// Aggregate reads raw records and runs the tag aggregator over them.
func (s *Settings) Aggregate(path string) (aggregate.Result, error) {
	recs, err := records.ReadFile(path)
	if err != nil {
		return aggregate.Result{}, err
	}
	s.Logger.Info("Read input", "path", path, "records", len(recs), "match", s.MatchMode.String())
	return aggregate.Run(recs, s.Taxonomy, taxonomy.NewMatcher(s.MatchMode), s.Logger), nil
}

// LoadTags reads a tag-level table.
func LoadTags(path string) ([]models.TagAggregate, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open tag table: %w", err)
	}
	defer f.Close()

	tags, err := tabular.ReadTags(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag table %s: %w", path, err)
	}
	return tags, nil
}

// MergePlatformCounts copies counted platform mentions from raw-derived rows
// onto rows read from a tag-level table, matching by tag id.
func MergePlatformCounts(tags, counted []models.TagAggregate) {
	byID := make(map[string]models.TagAggregate, len(counted))
	for _, t := range counted {
		byID[t.TagID] = t
	}
	for i := range tags {
		if t, ok := byID[tags[i].TagID]; ok {
			tags[i].PlatformMentions = t.PlatformMentions
		}
	}
}

// Emit writes through fn to path atomically, or to stdout when path is empty.
func (s *Settings) Emit(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	if err := s.Storage.Write(path, fn); err != nil {
		return err
	}
	s.Logger.Info("Wrote output", "path", path)
	return nil
}
