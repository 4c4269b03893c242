package services

import "errors"

// Per-run failure taxonomy. Callers wrap these with context and test with errors.Is.
var (
	ErrUnclassifiableRun       = errors.New("unclassifiable run")
	ErrEmptyPopulationSequence = errors.New("no population found")
	ErrMissingTestArtifact     = errors.New("missing test artifact")
	ErrMalformedTestArtifact   = errors.New("malformed test artifact")
	ErrUnknownTestFitness      = errors.New("no fitness logged for test")
	ErrParse                   = errors.New("log parse error")
	ErrReportExists            = errors.New("report already exists")
)
