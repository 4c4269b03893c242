package entities

// ReportKind identifies one of the CSV reports derived from a run
type ReportKind string

// Report kinds, in generation order
const (
	ReportTiming     ReportKind = "timing"
	ReportFitnessOBE ReportKind = "fitness-obe"
	ReportTests      ReportKind = "tests"
)

// AllReportKinds lists every report kind in the order they are generated
func AllReportKinds() []ReportKind {
	return []ReportKind{ReportTiming, ReportFitnessOBE, ReportTests}
}

// ReportArtifact is a report file at its deterministic location
type ReportArtifact struct {
	Kind ReportKind
	Path string
}
