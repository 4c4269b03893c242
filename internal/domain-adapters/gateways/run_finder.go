package gateways

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/asfault-reports/internal/domain/interfaces"
)

// ExperimentLogName is the file every run writes its log to
const ExperimentLogName = "experiment.log"

// RunFinder discovers run logs below a root folder
type RunFinder struct {
	logName string
	logger  interfaces.Logger
}

// NewRunFinder creates a finder for experiment.log files
func NewRunFinder(logger interfaces.Logger) *RunFinder {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &RunFinder{logName: ExperimentLogName, logger: logger}
}

// ListRunLogs walks rootFolder recursively and returns absolute log paths in lexical order.
// Subdirectories that cannot be read are skipped with a warning; only the root must be readable.
func (f *RunFinder) ListRunLogs(ctx context.Context, rootFolder string) ([]string, error) {
	root, err := filepath.Abs(rootFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root folder: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root folder unavailable: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("root folder is not a directory: %s", root)
	}

	var logs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			f.logger.Warn("Skipping unreadable path", interfaces.F("path", path), interfaces.F("error", err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() && d.Name() == f.logName {
			logs = append(logs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return logs, nil
}
