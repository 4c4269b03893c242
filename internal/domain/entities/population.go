package entities

// Origin tells how an individual entered a population
type Origin string

// Individual origins
const (
	OriginInitial Origin = "initial"
	OriginEvolved Origin = "evolved"
	OriginPadded  Origin = "padded"
)

// Individual is one candidate test within a population
type Individual struct {
	TestID string
	Origin Origin
}

// PopulationSnapshot summarizes one generation of the evolutionary search
type PopulationSnapshot struct {
	Individuals    []Individual
	InvalidTests   int
	FilteredTests  int
	GenerationTime float64 // seconds
	ExecutionTime  float64 // seconds
}

// EvolvedCount returns the number of individuals produced by evolution
func (p *PopulationSnapshot) EvolvedCount() int {
	return p.countOrigin(OriginEvolved)
}

// PaddedCount returns the number of individuals added to fill the population
func (p *PopulationSnapshot) PaddedCount() int {
	return p.countOrigin(OriginPadded)
}

// ElapsedTime is the generation plus execution time of the population
func (p *PopulationSnapshot) ElapsedTime() float64 {
	return p.GenerationTime + p.ExecutionTime
}

func (p *PopulationSnapshot) countOrigin(o Origin) int {
	n := 0
	for _, ind := range p.Individuals {
		if ind.Origin == o {
			n++
		}
	}
	return n
}

// PopulationSequence holds populations in generation order, generation 0 first
type PopulationSequence []PopulationSnapshot

// Last returns the final population, or nil for an empty sequence
func (s PopulationSequence) Last() *PopulationSnapshot {
	if len(s) == 0 {
		return nil
	}
	return &s[len(s)-1]
}

// PopulationLog is everything the log parser extracts from one run
type PopulationLog struct {
	Populations PopulationSequence
	Fitness     map[string]float64 // keyed by test ID
}

// FitnessFor returns the logged fitness of a test
func (l *PopulationLog) FitnessFor(testID string) (float64, bool) {
	if l == nil || l.Fitness == nil {
		return 0, false
	}
	v, ok := l.Fitness[testID]
	return v, ok
}
