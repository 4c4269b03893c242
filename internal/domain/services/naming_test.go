package services

import (
	"path/filepath"
	"testing"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
)

func TestReportFileName(t *testing.T) {
	labels := entities.RunLabels{
		Generator:   entities.GeneratorAsFault,
		Cardinality: entities.CardinalityMulti,
		MapSize:     entities.MapSizeSmall,
	}

	tests := []struct {
		kind entities.ReportKind
		want string
	}{
		{entities.ReportTiming, "asfault_multi_small_abc123_population_timing.csv"},
		{entities.ReportFitnessOBE, "asfault_multi_small_abc123_population_fitness_obe.csv"},
		{entities.ReportTests, "asfault_multi_small_abc123.csv"},
	}

	for _, tt := range tests {
		got, err := ReportFileName(labels, "abc123", tt.kind)
		if err != nil {
			t.Fatalf("ReportFileName(%s) error = %v", tt.kind, err)
		}
		if got != tt.want {
			t.Errorf("ReportFileName(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}

	if _, err := ReportFileName(labels, "abc123", "coverage"); err == nil {
		t.Error("ReportFileName() should reject an unknown kind")
	}
}

func TestReportArtifacts(t *testing.T) {
	run := &entities.Run{
		Labels: entities.RunLabels{
			Generator:   entities.GeneratorRandom,
			Cardinality: entities.CardinalitySingle,
			MapSize:     entities.MapSizeTiny,
		},
		ContentHash: "ff00",
	}

	artifacts, err := ReportArtifacts("/reports", run, []entities.ReportKind{entities.ReportTests})
	if err != nil {
		t.Fatalf("ReportArtifacts() error = %v", err)
	}
	want := filepath.Join("/reports", "random_single_tiny_ff00.csv")
	if len(artifacts) != 1 || artifacts[0].Path != want {
		t.Errorf("ReportArtifacts() = %+v, want path %s", artifacts, want)
	}
}
