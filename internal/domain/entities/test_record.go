package entities

// OBE is one recorded out-of-bounds episode of a test execution
type OBE struct {
	Start       int
	End         int
	MaxDistance float64
}

// TestRecord is the data read from a single test's JSON artifact
type TestRecord struct {
	TestID          string
	Result          string
	Reason          string
	Fitness         *float64 // nil when the artifact carries no fitness
	OBEs            []OBE
	MaximumDistance float64
	AverageDistance float64
	SourcePath      string
}

// OBECount returns the number of boundary events recorded for the test
func (r *TestRecord) OBECount() int {
	return len(r.OBEs)
}
