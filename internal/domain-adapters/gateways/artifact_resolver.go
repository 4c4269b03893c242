package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
	"github.com/ochairo/asfault-reports/internal/domain/services"
)

// ArtifactResolver locates per-test JSON artifacts next to a run's log
type ArtifactResolver struct {
	layout entities.ArtifactLayout
}

// NewArtifactResolver creates a resolver for the given layout
func NewArtifactResolver(layout entities.ArtifactLayout) *ArtifactResolver {
	if len(layout.OutputDirs) == 0 || len(layout.Stages) == 0 {
		defaults := entities.DefaultArtifactLayout()
		if len(layout.OutputDirs) == 0 {
			layout.OutputDirs = defaults.OutputDirs
		}
		if len(layout.Stages) == 0 {
			layout.Stages = defaults.Stages
		}
	}
	if layout.IDWidth <= 0 {
		layout.IDWidth = entities.DefaultArtifactLayout().IDWidth
	}
	return &ArtifactResolver{layout: layout}
}

// Resolve returns the path of test_<ID>.json for testID
func (r *ArtifactResolver) Resolve(logPath, testID string) (string, error) {
	runDir := filepath.Dir(logPath)

	// The last candidate is kept even when missing so errors name a concrete location
	outputDir := filepath.Join(runDir, r.layout.OutputDirs[len(r.layout.OutputDirs)-1])
	for _, dir := range r.layout.OutputDirs {
		candidate := filepath.Join(runDir, dir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			outputDir = candidate
			break
		}
	}

	fileName := TestArtifactName(testID, r.layout.IDWidth)
	for _, stage := range r.layout.Stages {
		candidate := filepath.Join(outputDir, stage, fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s not found under %s (%s)",
		services.ErrMissingTestArtifact, fileName, outputDir, strings.Join(r.layout.Stages, ", "))
}

// TestArtifactName returns the JSON file name for a test, e.g. test_0007.json
func TestArtifactName(testID string, width int) string {
	return "test_" + zeroPad(testID, width) + ".json"
}

// zeroPad left-pads s with zeros to width, keeping a leading sign in front
func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	return sign + strings.Repeat("0", width-len(sign)-len(s)) + s
}
