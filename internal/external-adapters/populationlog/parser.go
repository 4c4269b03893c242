// Package populationlog reconstructs the population sequence recorded in an experiment log.
//
// The reader understands three marker lines; anything else in the log is ignored:
//
//	POPULATION step=0 generation_time=1.5 execution_time=12.0 invalid=0 filtered=1
//	INDIVIDUAL test_id=7 origin=evolved
//	FITNESS test_id=7 value=0.82
//
// INDIVIDUAL lines belong to the most recent POPULATION line.
package populationlog

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
	"github.com/ochairo/asfault-reports/internal/domain/interfaces"
	"github.com/ochairo/asfault-reports/internal/domain/services"
)

const (
	markerPopulation = "POPULATION"
	markerIndividual = "INDIVIDUAL"
	markerFitness    = "FITNESS"

	maxLineSize = 1024 * 1024
)

// Parser reads population snapshots out of experiment logs
type Parser struct {
	generationLimit int
	logger          interfaces.Logger
}

// NewParser creates a parser that keeps at most generationLimit populations
func NewParser(generationLimit int, logger interfaces.Logger) *Parser {
	if generationLimit <= 0 {
		generationLimit = entities.DefaultGenerationLimit
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Parser{generationLimit: generationLimit, logger: logger}
}

// ParseLog parses the log at logPath. populationSize sizes each population and
// a population larger than it is reported as a warning.
func (p *Parser) ParseLog(ctx context.Context, logPath string, populationSize int) (*entities.PopulationLog, error) {
	//nolint:gosec // G304: logPath comes from the run discovery walk
	f, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if populationSize < 0 {
		populationSize = 0
	}

	result := &entities.PopulationLog{Fitness: make(map[string]float64)}
	limitReached := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		marker, fields, ok := splitMarkerLine(scanner.Text())
		if !ok {
			continue
		}

		switch marker {
		case markerPopulation:
			if len(result.Populations) >= p.generationLimit {
				limitReached = true
				continue
			}
			snapshot, err := parsePopulation(fields, populationSize)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", services.ErrParse, logPath, lineNo, err)
			}
			result.Populations = append(result.Populations, snapshot)

		case markerIndividual:
			if limitReached {
				continue
			}
			current := result.Populations.Last()
			if current == nil {
				return nil, fmt.Errorf("%w: %s:%d: individual before first population", services.ErrParse, logPath, lineNo)
			}
			individual, err := parseIndividual(fields)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", services.ErrParse, logPath, lineNo, err)
			}
			current.Individuals = append(current.Individuals, individual)
			if populationSize > 0 && len(current.Individuals) == populationSize+1 {
				p.logger.Warn("Population larger than expected",
					interfaces.F("log", logPath),
					interfaces.F("step", len(result.Populations)-1),
					interfaces.F("population_size", populationSize))
			}

		case markerFitness:
			testID, value, err := parseFitness(fields)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", services.ErrParse, logPath, lineNo, err)
			}
			result.Fitness[testID] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", services.ErrParse, logPath, err)
	}

	if limitReached {
		p.logger.Debug("Generation limit reached",
			interfaces.F("log", logPath),
			interfaces.F("limit", p.generationLimit))
	}

	return result, nil
}

// splitMarkerLine finds the first marker token of a line and returns the key=value pairs after it
func splitMarkerLine(line string) (string, map[string]string, bool) {
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		if tok != markerPopulation && tok != markerIndividual && tok != markerFitness {
			continue
		}
		fields := make(map[string]string, len(tokens)-i-1)
		for _, kv := range tokens[i+1:] {
			if k, v, found := strings.Cut(kv, "="); found {
				fields[k] = v
			}
		}
		return tok, fields, true
	}
	return "", nil, false
}

func parsePopulation(fields map[string]string, populationSize int) (entities.PopulationSnapshot, error) {
	var (
		snapshot = entities.PopulationSnapshot{Individuals: make([]entities.Individual, 0, populationSize)}
		err      error
	)
	if snapshot.GenerationTime, err = floatField(fields, "generation_time"); err != nil {
		return snapshot, err
	}
	if snapshot.ExecutionTime, err = floatField(fields, "execution_time"); err != nil {
		return snapshot, err
	}
	if snapshot.InvalidTests, err = intField(fields, "invalid"); err != nil {
		return snapshot, err
	}
	if snapshot.FilteredTests, err = intField(fields, "filtered"); err != nil {
		return snapshot, err
	}
	return snapshot, nil
}

func parseIndividual(fields map[string]string) (entities.Individual, error) {
	testID := fields["test_id"]
	if testID == "" {
		return entities.Individual{}, fmt.Errorf("missing test_id")
	}
	origin := entities.Origin(fields["origin"])
	switch origin {
	case entities.OriginInitial, entities.OriginEvolved, entities.OriginPadded:
	case "":
		origin = entities.OriginInitial
	default:
		return entities.Individual{}, fmt.Errorf("unknown origin %q", origin)
	}
	return entities.Individual{TestID: testID, Origin: origin}, nil
}

func parseFitness(fields map[string]string) (string, float64, error) {
	testID := fields["test_id"]
	if testID == "" {
		return "", 0, fmt.Errorf("missing test_id")
	}
	if _, ok := fields["value"]; !ok {
		return "", 0, fmt.Errorf("missing value")
	}
	value, err := floatField(fields, "value")
	if err != nil {
		return "", 0, err
	}
	return testID, value, nil
}

// floatField parses an optional number, absent meaning zero
func floatField(fields map[string]string, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}

func intField(fields map[string]string, key string) (int, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
