// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
	"github.com/ochairo/asfault-reports/internal/domain/interfaces"
	ifgateways "github.com/ochairo/asfault-reports/internal/domain/interfaces/gateways"
	"github.com/ochairo/asfault-reports/internal/domain/interfaces/repositories"
	"github.com/ochairo/asfault-reports/internal/domain/services"
)

// RunClassifier interface for labelling runs from their paths
type RunClassifier interface {
	Classify(logPath string) (entities.RunLabels, error)
}

// RunStatus is the outcome of processing one run
type RunStatus string

// Run statuses
const (
	RunProcessed RunStatus = "processed"
	RunCached    RunStatus = "cached"
	RunSkipped   RunStatus = "skipped"
	RunFailed    RunStatus = "failed"
)

// ReportStatus is the outcome of one report of a run
type ReportStatus string

// Report statuses
const (
	ReportGenerated ReportStatus = "generated"
	ReportCached    ReportStatus = "cached"
	ReportFailed    ReportStatus = "failed"
)

// ReportOutcome records what happened to one requested report
type ReportOutcome struct {
	Artifact entities.ReportArtifact
	Status   ReportStatus
	Error    error
}

// RunResult contains the result of processing one run
type RunResult struct {
	LogPath     string
	Run         *entities.Run
	Status      RunStatus
	Reason      string // why a run was skipped or cached
	Populations int    // populations reported after truncation
	Reports     []ReportOutcome
	Stage       string // step that failed
	Error       error
	Duration    time.Duration
}

// BatchSummary aggregates the results of one invocation
type BatchSummary struct {
	BatchID  string
	Results  []RunResult
	Duration time.Duration
}

// Count returns the number of runs that ended with status
func (s *BatchSummary) Count(status RunStatus) int {
	n := 0
	for i := range s.Results {
		if s.Results[i].Status == status {
			n++
		}
	}
	return n
}

// RunOrchestratorConfig holds configuration for the orchestrator
type RunOrchestratorConfig struct {
	OutputDir      string
	Reports        []entities.ReportKind
	Only           entities.Generator // empty processes every generator
	PopulationSize int
	TimeLimit      int // seconds, services.NoTimeLimit disables truncation
}

// RunOrchestrator turns discovered run logs into CSV reports, one run at a time
type RunOrchestrator struct {
	runRepo       repositories.RunRepository
	classifier    RunClassifier
	fingerprinter ifgateways.Fingerprinter
	provider      ifgateways.PopulationSequenceProvider
	generators    map[entities.ReportKind]ifgateways.ReportGenerator
	exists        services.ExistsFunc
	logger        interfaces.Logger
	config        RunOrchestratorConfig
}

// NewRunOrchestrator creates a new run orchestrator
func NewRunOrchestrator(
	runRepo repositories.RunRepository,
	classifier RunClassifier,
	fingerprinter ifgateways.Fingerprinter,
	provider ifgateways.PopulationSequenceProvider,
	generators []ifgateways.ReportGenerator,
	exists services.ExistsFunc,
	config RunOrchestratorConfig,
	logger interfaces.Logger,
) *RunOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if exists == nil {
		exists = fileExists
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}

	byKind := make(map[entities.ReportKind]ifgateways.ReportGenerator, len(generators))
	for _, g := range generators {
		byKind[g.Kind()] = g
	}

	return &RunOrchestrator{
		runRepo:       runRepo,
		classifier:    classifier,
		fingerprinter: fingerprinter,
		provider:      provider,
		generators:    byKind,
		exists:        exists,
		logger:        logger,
		config:        config,
	}
}

// Process discovers every run below rootFolder and processes them in order.
// Per-run failures are recorded in the summary and never stop the batch.
func (o *RunOrchestrator) Process(ctx context.Context, rootFolder string) (*BatchSummary, error) {
	startTime := time.Now()
	summary := &BatchSummary{BatchID: uuid.NewString()}

	logs, err := o.runRepo.ListRunLogs(ctx, rootFolder)
	if err != nil {
		return summary, fmt.Errorf("failed to discover runs: %w", err)
	}
	o.logger.Info("Discovered runs",
		interfaces.F("batch", summary.BatchID),
		interfaces.F("root", rootFolder),
		interfaces.F("count", len(logs)))

	for _, logPath := range logs {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(startTime)
			return summary, err
		}
		summary.Results = append(summary.Results, o.ProcessRun(ctx, logPath))
	}

	summary.Duration = time.Since(startTime)
	o.logger.Info("Batch complete",
		interfaces.F("batch", summary.BatchID),
		interfaces.F("processed", summary.Count(RunProcessed)),
		interfaces.F("cached", summary.Count(RunCached)),
		interfaces.F("skipped", summary.Count(RunSkipped)),
		interfaces.F("failed", summary.Count(RunFailed)),
		interfaces.F("duration", summary.Duration.Round(time.Millisecond)))
	return summary, nil
}

// ProcessRun executes the complete report workflow for a single run log
func (o *RunOrchestrator) ProcessRun(ctx context.Context, logPath string) (result RunResult) {
	startTime := time.Now()
	result = RunResult{LogPath: logPath}
	defer func() { result.Duration = time.Since(startTime) }()

	// Step 1: Classify from the path
	labels, err := o.classifier.Classify(logPath)
	if err != nil {
		return o.skip(result, err.Error())
	}
	run := &entities.Run{LogPath: logPath, Labels: labels}
	result.Run = run

	// Step 2: Generator filter, before any expensive work
	if o.config.Only != "" && labels.Generator != o.config.Only {
		return o.skip(result, fmt.Sprintf("generator %s does not match %s", labels.Generator, o.config.Only))
	}

	// Step 3: Fingerprint the log content
	run.ContentHash, err = o.fingerprinter.Fingerprint(logPath)
	if err != nil {
		return o.fail(result, "fingerprint", err)
	}
	o.logger.Info("Found run",
		interfaces.F("log", logPath),
		interfaces.F("hash", run.ContentHash),
		interfaces.F("generator", labels.Generator),
		interfaces.F("cardinality", labels.Cardinality),
		interfaces.F("map_size", labels.MapSize))

	// Step 4: Cache gate, checked before the log is parsed
	requested, err := services.ReportArtifacts(o.config.OutputDir, run, o.config.Reports)
	if err != nil {
		return o.fail(result, "naming", err)
	}
	if !services.ShouldRun(requested, o.exists) {
		result.Status = RunCached
		result.Reason = "all requested reports exist"
		if len(requested) == 0 {
			result.Reason = "no reports requested"
		}
		for _, artifact := range requested {
			result.Reports = append(result.Reports, ReportOutcome{Artifact: artifact, Status: ReportCached})
		}
		o.logger.Info("All the analysis are already cached", interfaces.F("log", logPath), interfaces.F("hash", run.ContentHash))
		return result
	}
	o.logger.Debug("Reports pending",
		interfaces.F("log", logPath),
		interfaces.F("pending", len(services.PendingReports(requested, o.exists))),
		interfaces.F("requested", len(requested)))

	// Step 5: Parse populations once for every report
	populationLog, err := o.provider.ParseLog(ctx, logPath, o.config.PopulationSize)
	if err != nil {
		return o.fail(result, "parse", err)
	}
	if populationLog == nil || len(populationLog.Populations) == 0 {
		return o.fail(result, "parse", services.ErrEmptyPopulationSequence)
	}

	// Step 6: Apply the time budget
	populations := services.TruncateByTime(populationLog.Populations, o.config.TimeLimit)
	if o.config.TimeLimit != services.NoTimeLimit {
		o.logger.Info("Limited populations by time",
			interfaces.F("limit", o.config.TimeLimit),
			interfaces.F("populations", len(populations)),
			interfaces.F("total", len(populationLog.Populations)))
	}
	result.Populations = len(populations)

	// Step 7: Generate every report that is still missing
	input := &ifgateways.ReportInput{Run: run, Log: populationLog, Populations: populations}
	for _, artifact := range requested {
		outcome := o.generate(ctx, input, artifact)
		result.Reports = append(result.Reports, outcome)
		if outcome.Status == ReportFailed {
			return o.fail(result, string(artifact.Kind), outcome.Error)
		}
	}

	result.Status = RunProcessed
	return result
}

func (o *RunOrchestrator) generate(ctx context.Context, input *ifgateways.ReportInput, artifact entities.ReportArtifact) ReportOutcome {
	outcome := ReportOutcome{Artifact: artifact}

	if o.exists(artifact.Path) {
		o.logger.Info("Skip report: output file exists", interfaces.F("report", artifact.Kind), interfaces.F("output", artifact.Path))
		outcome.Status = ReportCached
		return outcome
	}

	generator, ok := o.generators[artifact.Kind]
	if !ok {
		outcome.Status = ReportFailed
		outcome.Error = fmt.Errorf("no generator registered for %s report", artifact.Kind)
		return outcome
	}

	o.logger.Info("Running analysis", interfaces.F("report", artifact.Kind), interfaces.F("output", artifact.Path))
	if err := generator.Generate(ctx, input, artifact.Path); err != nil {
		if errors.Is(err, services.ErrReportExists) {
			// Another invocation published it first
			outcome.Status = ReportCached
			return outcome
		}
		outcome.Status = ReportFailed
		outcome.Error = fmt.Errorf("%s report failed: %w", artifact.Kind, err)
		return outcome
	}

	o.logger.Debug("Report written", interfaces.F("report", artifact.Kind), interfaces.F("output", artifact.Path))
	outcome.Status = ReportGenerated
	return outcome
}

func (o *RunOrchestrator) skip(result RunResult, reason string) RunResult {
	result.Status = RunSkipped
	result.Reason = reason
	o.logger.Warn("Skipping run", interfaces.F("log", result.LogPath), interfaces.F("reason", reason))
	return result
}

func (o *RunOrchestrator) fail(result RunResult, stage string, err error) RunResult {
	result.Status = RunFailed
	result.Stage = stage
	result.Error = err
	o.logger.Error("Experiment run is invalid",
		interfaces.F("log", result.LogPath),
		interfaces.F("stage", stage),
		interfaces.F("error", err))
	return result
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
