// Package matrix classifies tags into strategic signal quadrants by
// frequency and average engagement.
package matrix

import (
	"github.com/dtnitsch/policy-engagement/models"
	"github.com/dtnitsch/policy-engagement/pkg/analytics"
)

// Quadrant is the position of a tag relative to both baselines.
type Quadrant string

const (
	CoreStrategic  Quadrant = "core_strategic"  // high frequency, high engagement
	HighEfficiency Quadrant = "high_efficiency" // low frequency, high engagement
	StrongPush     Quadrant = "strong_push"     // high frequency, low engagement
	Marginal       Quadrant = "marginal"        // low frequency, low engagement
)

// Quadrants lists every quadrant in report order.
var Quadrants = []Quadrant{CoreStrategic, HighEfficiency, StrongPush, Marginal}

// Label returns the human readable quadrant name.
func (q Quadrant) Label() string {
	switch q {
	case CoreStrategic:
		return "Core Strategic Signals (High Frequency + High Engagement)"
	case HighEfficiency:
		return "High Efficiency Opportunity Signals (Low Frequency + High Engagement)"
	case StrongPush:
		return "Strong Push Agenda Signals (High Frequency + Low Engagement)"
	default:
		return "Marginal Signals (Low Frequency + Low Engagement)"
	}
}

// Scope names the data a matrix was built from.
const (
	ScopeOverall = "overall"
	ScopeX       = "x"
	ScopeTruth   = "truth"
)

// ScopeFor returns the scope name of a platform matrix.
func ScopeFor(p models.Platform) string {
	if p == models.PlatformTruthSocial {
		return ScopeTruth
	}
	return ScopeX
}

// Point is one tag placed on the matrix.
type Point struct {
	TagID      string   `yaml:"tag_id"`
	CategoryID string   `yaml:"category_id"`
	Frequency  float64  `yaml:"frequency_pct"`
	Engagement float64  `yaml:"average_engagement"`
	Quadrant   Quadrant `yaml:"quadrant"`
}

// Baselines split the matrix into quadrants.
type Baselines struct {
	Frequency        float64 `yaml:"frequency_pct"`
	Engagement       float64 `yaml:"engagement"`
	EngagementMethod string  `yaml:"engagement_method"` // "mean" or "median"
}

// Group lists the tags that fell into one quadrant.
type Group struct {
	Quadrant Quadrant `yaml:"quadrant"`
	Label    string   `yaml:"label"`
	Tags     []string `yaml:"tags"`
}

// CategorySummary describes one category's points.
type CategorySummary struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Tags           int      `yaml:"tags"`
	MeanFrequency  float64  `yaml:"mean_frequency_pct"`
	MeanEngagement float64  `yaml:"mean_engagement"`
	MinFrequency   float64  `yaml:"min_frequency_pct"`
	MaxFrequency   float64  `yaml:"max_frequency_pct"`
	MinEngagement  float64  `yaml:"min_engagement"`
	MaxEngagement  float64  `yaml:"max_engagement"`
	TagIDs         []string `yaml:"tag_ids"`
}

// Matrix is the classified signal matrix for one scope.
type Matrix struct {
	Scope         string            `yaml:"scope"`
	Baselines     Baselines         `yaml:"baselines"`
	Points        []Point           `yaml:"points"`
	Groups        []Group           `yaml:"quadrants"`
	Categories    []CategorySummary `yaml:"categories"`
	TopFrequency  string            `yaml:"top_frequency,omitempty"`
	TopEngagement string            `yaml:"top_engagement,omitempty"`
}

// Overall builds the matrix over tags with a positive overall frequency,
// using mean baselines on both axes.
func Overall(tags []models.TagAggregate, tax models.Taxonomy) Matrix {
	var points []Point
	for _, t := range analytics.Active(tags) {
		points = append(points, Point{
			TagID:      t.TagID,
			CategoryID: t.CategoryID,
			Frequency:  t.FrequencyPct,
			Engagement: t.AverageEngagement,
		})
	}
	return build(ScopeOverall, points, tax, false)
}

// ForPlatform builds the matrix from platform-relative frequencies. The
// engagement baseline is the median so a few viral posts do not dominate.
func ForPlatform(freqs []models.PlatformFrequency, p models.Platform, tax models.Taxonomy) Matrix {
	var points []Point
	for _, f := range freqs {
		if f.Platform != p {
			continue
		}
		points = append(points, Point{
			TagID:      f.TagID,
			CategoryID: f.CategoryID,
			Frequency:  f.FrequencyPct,
			Engagement: f.AverageEngagement,
		})
	}
	return build(ScopeFor(p), points, tax, true)
}

func build(scope string, points []Point, tax models.Taxonomy, median bool) Matrix {
	freqs := make([]float64, len(points))
	engs := make([]float64, len(points))
	for i, pt := range points {
		freqs[i] = pt.Frequency
		engs[i] = pt.Engagement
	}

	base := Baselines{Frequency: analytics.Mean(freqs), EngagementMethod: "mean"}
	if median {
		base.Engagement = analytics.Median(engs)
		base.EngagementMethod = "median"
	} else {
		base.Engagement = analytics.Mean(engs)
	}

	m := Matrix{Scope: scope, Baselines: base, Points: Classify(points, base)}

	for _, q := range Quadrants {
		g := Group{Quadrant: q, Label: q.Label(), Tags: []string{}}
		for _, pt := range m.Points {
			if pt.Quadrant == q {
				g.Tags = append(g.Tags, pt.TagID)
			}
		}
		m.Groups = append(m.Groups, g)
	}

	m.Categories = summarize(m.Points, tax)

	var topF, topE *Point
	for i := range m.Points {
		pt := &m.Points[i]
		if topF == nil || pt.Frequency > topF.Frequency {
			topF = pt
		}
		if topE == nil || pt.Engagement > topE.Engagement {
			topE = pt
		}
	}
	if topF != nil {
		m.TopFrequency = topF.TagID
		m.TopEngagement = topE.TagID
	}
	return m
}

// Classify assigns each point a quadrant. Values equal to a baseline count as high.
func Classify(points []Point, base Baselines) []Point {
	out := make([]Point, len(points))
	for i, pt := range points {
		highF := pt.Frequency >= base.Frequency
		highE := pt.Engagement >= base.Engagement
		switch {
		case highF && highE:
			pt.Quadrant = CoreStrategic
		case !highF && highE:
			pt.Quadrant = HighEfficiency
		case highF && !highE:
			pt.Quadrant = StrongPush
		default:
			pt.Quadrant = Marginal
		}
		out[i] = pt
	}
	return out
}

func summarize(points []Point, tax models.Taxonomy) []CategorySummary {
	var out []CategorySummary
	for _, c := range tax.Categories {
		var freqs, engs []float64
		var ids []string
		for _, pt := range points {
			if pt.CategoryID != c.ID {
				continue
			}
			freqs = append(freqs, pt.Frequency)
			engs = append(engs, pt.Engagement)
			ids = append(ids, pt.TagID)
		}
		if len(ids) == 0 {
			continue
		}
		s := CategorySummary{
			ID:             c.ID,
			Name:           c.Short,
			Tags:           len(ids),
			MeanFrequency:  analytics.Mean(freqs),
			MeanEngagement: analytics.Mean(engs),
			TagIDs:         ids,
		}
		if s.Name == "" {
			s.Name = c.Name
		}
		s.MinFrequency, s.MaxFrequency = analytics.MinMax(freqs)
		s.MinEngagement, s.MaxEngagement = analytics.MinMax(engs)
		out = append(out, s)
	}
	return out
}
