// Package gateways defines interfaces for external collaborators of the report pipeline.
package gateways

import (
	"context"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
)

// PopulationSequenceProvider parses a run's log into its ordered populations
type PopulationSequenceProvider interface {
	// ParseLog reads the log at logPath; populationSize is a generation-size hint
	ParseLog(ctx context.Context, logPath string, populationSize int) (*entities.PopulationLog, error)
}

// Fingerprinter computes the content digest used to identify a run
type Fingerprinter interface {
	Fingerprint(path string) (string, error)
}
