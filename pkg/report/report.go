// Package report folds component records into the weighted adoption
// summary. Aggregation is a pure function of the record list: the same
// records always produce the same summary.
package report

import (
	"math"
	"time"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/analyzer"
)

// Per-record weights. All weights lie in [0,1], so weightedScore can
// never exceed maxScore.
const (
	WeightDesignSystem  = 1.0
	WeightDynamicImport = 0.5
	// WeightComposedCustom is the midpoint between a plain custom
	// component and a design-system import.
	WeightComposedCustom = 0.875
	WeightPlainCustom    = 0.75
)

// Metadata describes the scan that produced a report.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RepoPath    string    `json:"repoPath"`
	Incremental bool      `json:"incremental"`
}

// Summary holds the aggregate counts and the weighted adoption score.
// Never mutated after construction.
type Summary struct {
	DesignSystemComponents int     `json:"designSystemComponents"`
	CustomComponents       int     `json:"customComponents"`
	TotalComponents        int     `json:"totalComponents"`
	AdoptionPercentage     float64 `json:"adoptionPercentage"`
	WeightedScore          float64 `json:"weightedScore"`
	MaxScore               float64 `json:"maxScore"`
}

// Report is the JSON-serializable scan output.
type Report struct {
	Metadata   Metadata                   `json:"metadata"`
	Summary    Summary                    `json:"summary"`
	Components []analyzer.ComponentRecord `json:"components"`
}

// Weight returns the adoption weight of a single record.
func Weight(rec analyzer.ComponentRecord) float64 {
	switch rec.Classification {
	case analyzer.ClassDesignSystemImport:
		return WeightDesignSystem
	case analyzer.ClassDynamicImport:
		return WeightDynamicImport
	case analyzer.ClassCustomComponent:
		if rec.CompositionFlag {
			return WeightComposedCustom
		}
		return WeightPlainCustom
	default:
		return 0
	}
}

// Aggregate folds records into a Summary.
//
// With zero records the percentage is mathematically undefined; the
// chosen policy reports 0 so the value is always representable.
func Aggregate(records []analyzer.ComponentRecord) Summary {
	s := Summary{TotalComponents: len(records)}

	for _, rec := range records {
		if rec.Classification == analyzer.ClassDesignSystemImport {
			s.DesignSystemComponents++
		} else {
			s.CustomComponents++
		}
		s.WeightedScore += Weight(rec)
	}

	s.MaxScore = float64(len(records)) * WeightDesignSystem
	if s.MaxScore > 0 {
		// Only the percentage is rounded; the score stays the exact sum.
		s.AdoptionPercentage = round2(100 * s.WeightedScore / s.MaxScore)
	}
	return s
}

// New assembles a complete report for a finished scan.
func New(repoPath string, incremental bool, records []analyzer.ComponentRecord) *Report {
	if records == nil {
		records = []analyzer.ComponentRecord{}
	}
	return &Report{
		Metadata: Metadata{
			Timestamp:   time.Now().UTC(),
			RepoPath:    repoPath,
			Incremental: incremental,
		},
		Summary:    Aggregate(records),
		Components: records,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
