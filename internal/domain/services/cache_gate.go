package services

import "github.com/ochairo/asfault-reports/internal/domain/entities"

// ExistsFunc reports whether a file is present
type ExistsFunc func(path string) bool

// ShouldRun tells whether any requested report still has to be produced.
// Only presence counts: a file at the expected path is a finished report.
func ShouldRun(requested []entities.ReportArtifact, exists ExistsFunc) bool {
	for _, artifact := range requested {
		if !exists(artifact.Path) {
			return true
		}
	}
	return false
}

// PendingReports returns the requested reports whose files are absent, in order
func PendingReports(requested []entities.ReportArtifact, exists ExistsFunc) []entities.ReportArtifact {
	pending := make([]entities.ReportArtifact, 0, len(requested))
	for _, artifact := range requested {
		if !exists(artifact.Path) {
			pending = append(pending, artifact)
		}
	}
	return pending
}
