package gateways

import "github.com/ochairo/asfault-reports/internal/domain/entities"

// TestArtifactResolver locates the JSON artifact of a test produced by a run
type TestArtifactResolver interface {
	// Resolve returns the artifact path for testID, relative to the run's log file
	Resolve(logPath, testID string) (string, error)
}

// TestFileInspector reads a single per-test JSON artifact
type TestFileInspector interface {
	// Inspect extracts the full test record
	Inspect(path string) (*entities.TestRecord, error)

	// CountOBEs returns the number of boundary events recorded in the artifact
	CountOBEs(path string) (int, error)
}
