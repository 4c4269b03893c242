package services

import (
	"testing"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
)

func TestShouldRun(t *testing.T) {
	requested := []entities.ReportArtifact{
		{Kind: entities.ReportTiming, Path: "/out/timing.csv"},
		{Kind: entities.ReportTests, Path: "/out/tests.csv"},
	}

	tests := []struct {
		name     string
		existing map[string]bool
		reqs     []entities.ReportArtifact
		want     bool
	}{
		{name: "nothing cached", existing: map[string]bool{}, reqs: requested, want: true},
		{name: "partially cached", existing: map[string]bool{"/out/timing.csv": true}, reqs: requested, want: true},
		{name: "fully cached", existing: map[string]bool{"/out/timing.csv": true, "/out/tests.csv": true}, reqs: requested, want: false},
		{name: "no reports requested", existing: map[string]bool{}, reqs: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists := func(p string) bool { return tt.existing[p] }
			if got := ShouldRun(tt.reqs, exists); got != tt.want {
				t.Errorf("ShouldRun() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPendingReports(t *testing.T) {
	requested := []entities.ReportArtifact{
		{Kind: entities.ReportTiming, Path: "a"},
		{Kind: entities.ReportFitnessOBE, Path: "b"},
		{Kind: entities.ReportTests, Path: "c"},
	}
	pending := PendingReports(requested, func(p string) bool { return p == "b" })

	if len(pending) != 2 {
		t.Fatalf("len(PendingReports()) = %d, want 2", len(pending))
	}
	if pending[0].Kind != entities.ReportTiming || pending[1].Kind != entities.ReportTests {
		t.Errorf("PendingReports() = %+v, want timing then tests", pending)
	}
}
