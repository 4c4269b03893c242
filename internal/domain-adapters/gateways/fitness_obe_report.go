package gateways

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
	ifgateways "github.com/ochairo/asfault-reports/internal/domain/interfaces/gateways"
	"github.com/ochairo/asfault-reports/internal/domain/services"
)

var fitnessOBEHeader = []string{
	"evolution_step",
	"cumulative_obe",
	"cumulative_fitness",
}

// FitnessOBEReport writes cumulative OBE count and fitness per population.
//
// OBEs are counted from what each test's JSON artifact recorded; they are not
// recomputed from the execution states. Reports stay comparable with earlier runs that way.
type FitnessOBEReport struct {
	resolver  ifgateways.TestArtifactResolver
	inspector ifgateways.TestFileInspector
}

// NewFitnessOBEReport creates the fitness/OBE report generator
func NewFitnessOBEReport(resolver ifgateways.TestArtifactResolver, inspector ifgateways.TestFileInspector) *FitnessOBEReport {
	return &FitnessOBEReport{resolver: resolver, inspector: inspector}
}

// Kind returns entities.ReportFitnessOBE
func (r *FitnessOBEReport) Kind() entities.ReportKind {
	return entities.ReportFitnessOBE
}

// Generate writes the fitness/OBE CSV. Any test that cannot be looked up aborts the report.
func (r *FitnessOBEReport) Generate(ctx context.Context, in *ifgateways.ReportInput, outputPath string) error {
	return writeCSVReport(outputPath, fitnessOBEHeader, func(w *csv.Writer) error {
		for idx := range in.Populations {
			if err := ctx.Err(); err != nil {
				return err
			}

			cumulativeOBE := 0
			cumulativeFitness := 0.0
			for _, individual := range in.Populations[idx].Individuals {
				fitness, ok := in.Log.FitnessFor(individual.TestID)
				if !ok {
					return fmt.Errorf("population %d: %w %s", idx, services.ErrUnknownTestFitness, individual.TestID)
				}

				artifact, err := r.resolver.Resolve(in.Run.LogPath, individual.TestID)
				if err != nil {
					return fmt.Errorf("population %d, test %s: %w", idx, individual.TestID, err)
				}
				obeCount, err := r.inspector.CountOBEs(artifact)
				if err != nil {
					return fmt.Errorf("population %d, test %s: %w", idx, individual.TestID, err)
				}

				cumulativeFitness += fitness
				cumulativeOBE += obeCount
			}

			if err := w.Write([]string{
				strconv.Itoa(idx),
				strconv.Itoa(cumulativeOBE),
				formatFloat(cumulativeFitness),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
