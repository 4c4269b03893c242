package gateways

import (
	"context"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
)

// ReportInput is the data handed to every report generator for one run
type ReportInput struct {
	Run *entities.Run
	Log *entities.PopulationLog

	// Populations is the (possibly truncated) sequence the report must cover
	Populations entities.PopulationSequence
}

// ReportGenerator writes one CSV report for a run
type ReportGenerator interface {
	Kind() entities.ReportKind
	Generate(ctx context.Context, in *ReportInput, outputPath string) error
}
