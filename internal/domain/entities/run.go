// Package entities defines core domain models and data structures.
package entities

// Generator identifies the test generator that produced a run
type Generator string

// Known generators
const (
	GeneratorRandom  Generator = "random"
	GeneratorAsFault Generator = "asfault"
)

// Cardinality tells whether a run exercised one or several subjects
type Cardinality string

// Known cardinalities
const (
	CardinalitySingle Cardinality = "single"
	CardinalityMulti  Cardinality = "multi"
)

// MapSize is the categorical scale of the test environment
type MapSize string

// Known map sizes
const (
	MapSizeTiny  MapSize = "tiny"
	MapSizeSmall MapSize = "small"
	MapSizeLarge MapSize = "large"
)

// RunLabels is the fully resolved classification of a run
type RunLabels struct {
	Generator   Generator
	Cardinality Cardinality
	MapSize     MapSize
}

// Run represents one execution of the test generator, identified by its log file
type Run struct {
	LogPath     string // absolute path of experiment.log
	Labels      RunLabels
	ContentHash string // hex digest of the log bytes
}

// ParseGenerator converts a user supplied generator name
func ParseGenerator(s string) (Generator, bool) {
	switch Generator(s) {
	case GeneratorRandom, GeneratorAsFault:
		return Generator(s), true
	default:
		return "", false
	}
}

// ParseCardinality converts a configured cardinality label
func ParseCardinality(s string) (Cardinality, bool) {
	switch Cardinality(s) {
	case CardinalitySingle, CardinalityMulti:
		return Cardinality(s), true
	default:
		return "", false
	}
}

// ParseMapSize converts a configured map size label
func ParseMapSize(s string) (MapSize, bool) {
	switch MapSize(s) {
	case MapSizeTiny, MapSizeSmall, MapSizeLarge:
		return MapSize(s), true
	default:
		return "", false
	}
}
