// Package pipeline runs every stage over one input file and writes the
// resulting tables, matrices and report into an output directory.
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/aggregate"
	"github.com/dtnitsch/policy-engagement/pkg/analytics"
	"github.com/dtnitsch/policy-engagement/pkg/manifest"
	"github.com/dtnitsch/policy-engagement/pkg/matrix"
	"github.com/dtnitsch/policy-engagement/pkg/normalize"
	"github.com/dtnitsch/policy-engagement/pkg/records"
	"github.com/dtnitsch/policy-engagement/pkg/rollup"
	"github.com/dtnitsch/policy-engagement/pkg/storage"
	"github.com/dtnitsch/policy-engagement/pkg/tabular"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

// File names inside the output directory.
const (
	TagsFile       = "tags.csv"
	CategoriesFile = "categories.csv"
	ReportFile     = "report.yaml"
)

// PlatformFile returns the platform frequency table name for p.
func PlatformFile(p models.Platform) string {
	return "platform_" + matrix.ScopeFor(p) + ".csv"
}

// MatrixFile returns the signal matrix file name for a scope.
func MatrixFile(scope string) string {
	return "matrix_" + scope + ".yaml"
}

type Options struct {
	InputPath string
	OutputDir string
	Taxonomy  models.Taxonomy
	MatchMode models.MatchMode
	TopN      int

	Logger  *slog.Logger
	Storage *storage.Storage
}

// Result holds every computed artifact of a run.
type Result struct {
	InputHash    string
	TaxonomyHash string
	Overlaps     []taxonomy.Overlap

	Aggregate  aggregate.Result
	Categories []models.CategoryAggregate
	Platforms  [models.NumPlatforms][]models.PlatformFrequency
	Matrices   []matrix.Matrix
	Report     analytics.Report

	Outputs      []manifest.Output
	ManifestPath string
}

// PlatformFrequencies normalizes tag frequencies against platform p. Counted
// platform mentions are used when present, with the crosstab's platform
// record count as denominator; otherwise counts are back-divided from
// engagement.
func PlatformFrequencies(tags []models.TagAggregate, p models.Platform, ct *aggregate.Crosstab) []models.PlatformFrequency {
	if normalize.HasPlatformCounts(tags) {
		return normalize.Direct(tags, p, ct.PlatformTotal(p))
	}
	return normalize.BackDivision(tags, p)
}

// Compute runs every stage in memory without touching the output directory.
func Compute(recs []models.RawRecord, opts Options) *Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := taxonomy.NewMatcher(opts.MatchMode)
	res := &Result{Overlaps: taxonomy.Overlaps(opts.Taxonomy, m)}
	for _, o := range res.Overlaps {
		logger.Warn("Tag code matches inside another code", "code", o.Code, "within", o.Within, "match", opts.MatchMode.String())
	}

	res.Aggregate = aggregate.Run(recs, opts.Taxonomy, m, logger)
	tags := res.Aggregate.Tags

	res.Categories = rollup.Categories(rollup.Input{
		Tags:            tags,
		Taxonomy:        opts.Taxonomy,
		Crosstab:        res.Aggregate.Crosstab,
		TotalRecords:    res.Aggregate.TotalRecords,
		TotalEngagement: res.Aggregate.TotalEngagement,
	})

	res.Matrices = append(res.Matrices, matrix.Overall(tags, opts.Taxonomy))
	for _, p := range models.Platforms {
		res.Platforms[p] = PlatformFrequencies(tags, p, res.Aggregate.Crosstab)
		res.Matrices = append(res.Matrices, matrix.ForPlatform(res.Platforms[p], p, opts.Taxonomy))
	}

	a := &analytics.Analytics{TopN: opts.TopN}
	res.Report = a.FrequencyReport(tags, opts.Taxonomy)

	logger.Info("Computed run",
		"records", res.Aggregate.TotalRecords,
		"active_tags", res.Report.ActiveTags,
		"category_rows", len(res.Categories),
	)
	return res
}

// Run validates the taxonomy, reads the input, computes every stage and then
// writes all outputs. Nothing is written if reading or parsing fails.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := opts.Storage
	if s == nil {
		s = &storage.Storage{}
	}

	if err := taxonomy.Validate(opts.Taxonomy); err != nil {
		return nil, err
	}
	taxHash, err := taxonomy.Fingerprint(opts.Taxonomy)
	if err != nil {
		return nil, err
	}

	data, err := s.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", opts.InputPath, err)
	}
	recs, err := records.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse input %s: %w", opts.InputPath, err)
	}
	logger.Info("Read input", "path", opts.InputPath, "records", len(recs))

	res := Compute(recs, opts)
	res.InputHash = manifest.ContentHash(data)
	res.TaxonomyHash = taxHash

	if err := res.write(opts.OutputDir, s); err != nil {
		return nil, err
	}

	res.ManifestPath, err = manifest.GenerateSummary(manifest.Input{
		InputPath:    opts.InputPath,
		InputHash:    res.InputHash,
		TaxonomyHash: res.TaxonomyHash,
		MatchMode:    opts.MatchMode,
		Aggregate:    res.Aggregate,
		Overlaps:     res.Overlaps,
		Outputs:      res.Outputs,
	}, opts.OutputDir, s)
	if err != nil {
		return nil, err
	}

	logger.Info("Wrote outputs", "dir", opts.OutputDir, "files", len(res.Outputs)+1)
	return res, nil
}

func (r *Result) write(dir string, s *storage.Storage) error {
	save := func(kind, name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		if err := s.Write(path, fn); err != nil {
			return fmt.Errorf("failed to write %s: %w", kind, err)
		}
		r.Outputs = append(r.Outputs, manifest.Output{Kind: kind, Path: path})
		return nil
	}

	if err := save("tags", TagsFile, func(w io.Writer) error {
		return tabular.WriteTags(w, r.Aggregate.Tags)
	}); err != nil {
		return err
	}
	if err := save("categories", CategoriesFile, func(w io.Writer) error {
		return tabular.WriteCategories(w, r.Categories)
	}); err != nil {
		return err
	}
	for _, p := range models.Platforms {
		rows := r.Platforms[p]
		if err := save("platform_"+matrix.ScopeFor(p), PlatformFile(p), func(w io.Writer) error {
			return tabular.WritePlatformFrequencies(w, rows)
		}); err != nil {
			return err
		}
	}
	for _, m := range r.Matrices {
		if err := save("matrix_"+m.Scope, MatrixFile(m.Scope), YAMLWriter(m)); err != nil {
			return err
		}
	}
	return save("report", ReportFile, YAMLWriter(r.Report))
}

// YAMLWriter returns a render func that encodes v as YAML.
func YAMLWriter(v any) func(io.Writer) error {
	return func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
}
