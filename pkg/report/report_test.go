package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/analyzer"
)

func dsImport(name string) analyzer.ComponentRecord {
	return analyzer.ComponentRecord{
		Name:           name,
		Classification: analyzer.ClassDesignSystemImport,
		Origin:         "@ui-kit/" + name,
		FilePath:       "/repo/src/app.ts",
	}
}

func custom(name string, composed bool) analyzer.ComponentRecord {
	return analyzer.ComponentRecord{
		Name:            name,
		Classification:  analyzer.ClassCustomComponent,
		Origin:          analyzer.OriginCustom,
		FilePath:        "/repo/src/app.ts",
		CompositionFlag: composed,
	}
}

func lazy(origin string) analyzer.ComponentRecord {
	return analyzer.ComponentRecord{
		Name:           analyzer.LazyLoadedName,
		Classification: analyzer.ClassDynamicImport,
		Origin:         origin,
		FilePath:       "/repo/src/routes.ts",
	}
}

func TestWeight_PerClassification(t *testing.T) {
	assert.Equal(t, 1.0, Weight(dsImport("Button")))
	assert.Equal(t, 0.5, Weight(lazy("./lazy/module")))
	assert.Equal(t, 0.875, Weight(custom("Hero", true)))
	assert.Equal(t, 0.75, Weight(custom("Hero", false)))
}

func TestAggregate_ZeroRecords(t *testing.T) {
	s := Aggregate(nil)

	assert.Equal(t, 0, s.TotalComponents)
	assert.Equal(t, 0.0, s.MaxScore)
	// Undefined percentage policy: report 0, never NaN.
	assert.Equal(t, 0.0, s.AdoptionPercentage)
}

func TestAggregate_SingleDesignSystemImport(t *testing.T) {
	s := Aggregate([]analyzer.ComponentRecord{dsImport("Button")})

	assert.Equal(t, 1, s.DesignSystemComponents)
	assert.Equal(t, 0, s.CustomComponents)
	assert.Equal(t, 1, s.TotalComponents)
	assert.Equal(t, 1.0, s.WeightedScore)
	assert.Equal(t, 1.0, s.MaxScore)
	assert.Equal(t, 100.0, s.AdoptionPercentage)
}

func TestAggregate_MixedRecords(t *testing.T) {
	records := []analyzer.ComponentRecord{
		dsImport("Button"),
		custom("Hero", true),
		custom("Footer", false),
		lazy("./lazy/module"),
	}
	s := Aggregate(records)

	assert.Equal(t, 1, s.DesignSystemComponents)
	assert.Equal(t, 3, s.CustomComponents)
	assert.Equal(t, 4, s.TotalComponents)
	assert.Equal(t, 4.0, s.MaxScore)
	// 1.0 + 0.875 + 0.75 + 0.5 = 3.125
	assert.Equal(t, 3.125, s.WeightedScore)
	assert.Equal(t, 78.13, s.AdoptionPercentage, "percentage rounds to two decimals")
	assert.LessOrEqual(t, s.WeightedScore, s.MaxScore)
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []analyzer.ComponentRecord{
		dsImport("Button"), custom("Hero", true), lazy("./a"),
	}
	require.Equal(t, Aggregate(records), Aggregate(records))
}

func TestNew_EmptyComponentsSerializable(t *testing.T) {
	rep := New("/repo", false, nil)

	require.NotNil(t, rep.Components)
	assert.Empty(t, rep.Components)
	assert.Equal(t, "/repo", rep.Metadata.RepoPath)
	assert.False(t, rep.Metadata.Incremental)
	assert.False(t, rep.Metadata.Timestamp.IsZero())
}
