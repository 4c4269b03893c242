package gateways

import (
	"context"
	"encoding/csv"
	"math"
	"strconv"
	"strings"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
	ifgateways "github.com/ochairo/asfault-reports/internal/domain/interfaces/gateways"
)

var timingHeader = []string{
	"evolution_step",
	"evolved_individuals",
	"padded_individuals",
	"invalid_tests",
	"filtered_tests",
	"generation_time",
	"execution_time",
}

// TimingReport writes one row of counts and durations per population
type TimingReport struct{}

// NewTimingReport creates the timing report generator
func NewTimingReport() *TimingReport {
	return &TimingReport{}
}

// Kind returns entities.ReportTiming
func (r *TimingReport) Kind() entities.ReportKind {
	return entities.ReportTiming
}

// Generate writes the timing CSV for in.Populations to outputPath
func (r *TimingReport) Generate(ctx context.Context, in *ifgateways.ReportInput, outputPath string) error {
	return writeCSVReport(outputPath, timingHeader, func(w *csv.Writer) error {
		for idx := range in.Populations {
			if err := ctx.Err(); err != nil {
				return err
			}
			population := &in.Populations[idx]
			if err := w.Write([]string{
				strconv.Itoa(idx),
				strconv.Itoa(population.EvolvedCount()),
				strconv.Itoa(population.PaddedCount()),
				strconv.Itoa(population.InvalidTests),
				strconv.Itoa(population.FilteredTests),
				formatFloat(population.GenerationTime),
				formatFloat(population.ExecutionTime),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatFloat writes the shortest exact decimal and keeps one fractional digit
// on whole values (12.0, not 12) so columns read the same as earlier reports.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
