package entities

import "path/filepath"

// PatternRule maps a label to the regular expression that selects it
type PatternRule struct {
	Label   string
	Pattern string
}

// ClassifierPatterns is the ordered pattern table used to label runs
type ClassifierPatterns struct {
	Generator   []PatternRule
	Cardinality []PatternRule
	MapSize     []PatternRule
}

// ArtifactLayout describes where a run stores its per-test JSON files
type ArtifactLayout struct {
	// OutputDirs are tried in order relative to the log folder; the first existing one is used
	OutputDirs []string
	// Stages are tried in order below the output dir; tests move from execs to final after a run
	Stages []string
	// IDWidth is the zero-padded width of the test ID in file names
	IDWidth int
}

// PipelineConfig holds the tunables that are not CLI flags
type PipelineConfig struct {
	Classifier      ClassifierPatterns
	Artifacts       ArtifactLayout
	GenerationLimit int
}

// DefaultGenerationLimit caps the populations read from one log
const DefaultGenerationLimit = 50

// DefaultClassifierPatterns returns the naming conventions of the experiment folders:
//
//	<Single|Multi>/<timestamp>/<bucket>/<bucket>_lanedist_<map>_<n>/experiment.log
//	<Single|Multi>/<timestamp>/<bucket>/<bucket>_random_<map>_<n>/experiment.log
func DefaultClassifierPatterns() ClassifierPatterns {
	return ClassifierPatterns{
		Generator: []PatternRule{
			{Label: string(GeneratorRandom), Pattern: `.*_random_.*$`},
			{Label: string(GeneratorAsFault), Pattern: `.*_lanedist_.*$`},
		},
		Cardinality: []PatternRule{
			{Label: string(CardinalitySingle), Pattern: `(?i).*single.*$`},
			{Label: string(CardinalityMulti), Pattern: `(?i).*multi.*$`},
		},
		MapSize: []PatternRule{
			{Label: string(MapSizeTiny), Pattern: `.*_0500_.*$`},
			{Label: string(MapSizeSmall), Pattern: `.*_1000_.*$`},
			{Label: string(MapSizeLarge), Pattern: `.*_2000_.*$`},
		},
	}
}

// DefaultArtifactLayout returns the layout written by the test generator
func DefaultArtifactLayout() ArtifactLayout {
	return ArtifactLayout{
		OutputDirs: []string{"output", filepath.Join(".asfaultenv", "output")},
		Stages:     []string{"execs", "final"},
		IDWidth:    4,
	}
}

// DefaultPipelineConfig returns the configuration used when no file is given
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Classifier:      DefaultClassifierPatterns(),
		Artifacts:       DefaultArtifactLayout(),
		GenerationLimit: DefaultGenerationLimit,
	}
}
