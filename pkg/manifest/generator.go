package manifest

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/aggregate"
	"github.com/dtnitsch/policy-engagement/pkg/mapreduce"
	"github.com/dtnitsch/policy-engagement/pkg/storage"
	"github.com/dtnitsch/policy-engagement/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest's name inside a run's output directory.
const FileName = "manifest.yaml"

// topTagCount bounds the top_tags list.
const topTagCount = 10

// Output is a file written by a run, passed in by the pipeline.
type Output struct {
	Kind string
	Path string
}

// Input carries everything the manifest summarises.
type Input struct {
	InputPath    string
	InputHash    string
	TaxonomyHash string
	MatchMode    models.MatchMode
	Aggregate    aggregate.Result
	Overlaps     []taxonomy.Overlap
	Outputs      []Output
}

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// Build assembles the manifest. File sizes are read through s.
func Build(in Input, s *storage.Storage) RunManifest {
	m := RunManifest{
		InputPath:       in.InputPath,
		InputHash:       in.InputHash,
		TaxonomyHash:    in.TaxonomyHash,
		MatchMode:       in.MatchMode.String(),
		TotalRecords:    in.Aggregate.TotalRecords,
		PlatformRecords: make(map[string]int64, models.NumPlatforms),
		Tags:            len(in.Aggregate.Tags),
		TopTags:         mapreduce.TopTags(mapreduce.Mentions(in.Aggregate.Tally), topTagCount),
	}

	for _, p := range models.Platforms {
		m.PlatformRecords[p.String()] = in.Aggregate.Crosstab.PlatformTotal(p)
	}
	for _, t := range in.Aggregate.Tags {
		if t.MentionCount > 0 {
			m.ActiveTags++
		}
		m.TotalEngagement += t.TotalEngagement
	}
	for _, o := range in.Overlaps {
		m.Overlaps = append(m.Overlaps, fmt.Sprintf("%s within %s", o.Code, o.Within))
	}

	for _, o := range in.Outputs {
		out := OutputSummary{Kind: o.Kind, Path: filepath.ToSlash(o.Path)}
		if stats, err := s.GetFileStats(o.Path); err == nil {
			out.SizeBytes = stats.SizeBytes
		}
		m.Outputs = append(m.Outputs, out)
	}
	return m
}

// GenerateSummary builds the manifest and writes it to dir/FileName.
// Returns the path to the generated manifest file.
func GenerateSummary(in Input, dir string, s *storage.Storage) (string, error) {
	m := Build(in, s)

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := s.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("failed to save manifest: %w", err)
	}
	return path, nil
}
