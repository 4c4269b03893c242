package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
)

// ReportFileName returns the file name of a report for the given run
func ReportFileName(labels entities.RunLabels, contentHash string, kind entities.ReportKind) (string, error) {
	parts := []string{
		string(labels.Generator),
		string(labels.Cardinality),
		string(labels.MapSize),
		contentHash,
	}

	switch kind {
	case entities.ReportTiming:
		parts = append(parts, "population", "timing")
	case entities.ReportFitnessOBE:
		parts = append(parts, "population", "fitness", "obe")
	case entities.ReportTests:
	default:
		return "", fmt.Errorf("unknown report kind: %s", kind)
	}

	return strings.Join(parts, "_") + ".csv", nil
}

// ReportArtifacts maps requested report kinds to their paths under outputDir
func ReportArtifacts(outputDir string, run *entities.Run, kinds []entities.ReportKind) ([]entities.ReportArtifact, error) {
	artifacts := make([]entities.ReportArtifact, 0, len(kinds))
	for _, kind := range kinds {
		name, err := ReportFileName(run.Labels, run.ContentHash, kind)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, entities.ReportArtifact{
			Kind: kind,
			Path: filepath.Join(outputDir, name),
		})
	}
	return artifacts, nil
}
