// Package repositories defines interfaces for data access layers.
package repositories

import "context"

// RunRepository discovers the experiment logs stored under a root folder
type RunRepository interface {
	// ListRunLogs returns absolute log paths in a deterministic order
	ListRunLogs(ctx context.Context, rootFolder string) ([]string, error)
}
