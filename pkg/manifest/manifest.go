package manifest

// RunManifest is the summary file written next to a run's output tables.
// It gives a reader the shape of a run without opening every table.
// It carries no timestamp so reruns on the same input are byte-identical.
type RunManifest struct {
	InputPath       string           `yaml:"input_path"`
	InputHash       string           `yaml:"input_sha256"`
	TaxonomyHash    string           `yaml:"taxonomy_sha256"`
	MatchMode       string           `yaml:"match_mode"`
	TotalRecords    int64            `yaml:"total_records"`
	PlatformRecords map[string]int64 `yaml:"platform_records"`
	Tags            int              `yaml:"tags"`
	ActiveTags      int              `yaml:"active_tags"`
	TotalEngagement int64            `yaml:"total_engagement"`
	TopTags         []string         `yaml:"top_tags"`
	Overlaps        []string         `yaml:"overlaps,omitempty"`
	Outputs         []OutputSummary  `yaml:"outputs"`
}

// OutputSummary describes one written output file.
type OutputSummary struct {
	Kind      string `yaml:"kind"`
	Path      string `yaml:"path"`
	SizeBytes int64  `yaml:"size_bytes"`
}
