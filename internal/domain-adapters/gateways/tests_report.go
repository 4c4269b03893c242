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

var testsHeader = []string{
	"test_id",
	"result",
	"reason",
	"fitness",
	"obe_count",
	"maximum_distance",
	"average_distance",
}

// TestsReport writes one row per test of the final test suite, i.e. the last population
type TestsReport struct {
	resolver  ifgateways.TestArtifactResolver
	inspector ifgateways.TestFileInspector
}

// NewTestsReport creates the tests report generator
func NewTestsReport(resolver ifgateways.TestArtifactResolver, inspector ifgateways.TestFileInspector) *TestsReport {
	return &TestsReport{resolver: resolver, inspector: inspector}
}

// Kind returns entities.ReportTests
func (r *TestsReport) Kind() entities.ReportKind {
	return entities.ReportTests
}

// Generate writes the tests CSV. A missing or malformed artifact fails the whole
// report: a final suite with holes is not usable downstream.
func (r *TestsReport) Generate(ctx context.Context, in *ifgateways.ReportInput, outputPath string) error {
	finalSuite := in.Populations.Last()
	if finalSuite == nil {
		return services.ErrEmptyPopulationSequence
	}

	return writeCSVReport(outputPath, testsHeader, func(w *csv.Writer) error {
		for _, individual := range finalSuite.Individuals {
			if err := ctx.Err(); err != nil {
				return err
			}

			artifact, err := r.resolver.Resolve(in.Run.LogPath, individual.TestID)
			if err != nil {
				return fmt.Errorf("test %s: %w", individual.TestID, err)
			}
			record, err := r.inspector.Inspect(artifact)
			if err != nil {
				return fmt.Errorf("test %s: %w", individual.TestID, err)
			}

			if err := w.Write(testRow(individual.TestID, record, in.Log)); err != nil {
				return err
			}
		}
		return nil
	})
}

func testRow(testID string, record *entities.TestRecord, log *entities.PopulationLog) []string {
	fitness := ""
	if v, ok := log.FitnessFor(testID); ok {
		fitness = formatFloat(v)
	} else if record.Fitness != nil {
		fitness = formatFloat(*record.Fitness)
	}

	return []string{
		testID,
		record.Result,
		record.Reason,
		fitness,
		strconv.Itoa(record.OBECount()),
		formatFloat(record.MaximumDistance),
		formatFloat(record.AverageDistance),
	}
}
