package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ochairo/asfault-reports/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/asfault-reports/internal/domain-orchestrators"
	"github.com/ochairo/asfault-reports/internal/domain/entities"
	"github.com/ochairo/asfault-reports/internal/domain/interfaces"
	ifgateways "github.com/ochairo/asfault-reports/internal/domain/interfaces/gateways"
	"github.com/ochairo/asfault-reports/internal/domain/services"
	"github.com/ochairo/asfault-reports/internal/external-adapters/populationlog"
	"github.com/ochairo/asfault-reports/internal/external-adapters/testjson"
	"github.com/ochairo/asfault-reports/internal/external-adapters/yaml"
)

const (
	exitOK    = 0
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	rootFolder     string
	outputFolder   string
	tests          bool
	timing         bool
	fitnessOBE     bool
	only           string
	populationSize int
	timeLimit      int
	configPath     string
	verbose        bool
}

func (o *options) reports() []entities.ReportKind {
	kinds := []entities.ReportKind{}
	if o.timing {
		kinds = append(kinds, entities.ReportTiming)
	}
	if o.fitnessOBE {
		kinds = append(kinds, entities.ReportFitnessOBE)
	}
	if o.tests {
		kinds = append(kinds, entities.ReportTests)
	}
	return kinds
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("asfault-reports", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.rootFolder, "root-folder", "", "Folder containing the experiment runs")
	fs.StringVar(&opts.outputFolder, "output-folder", ".", "Folder where the CSV reports are written")
	fs.BoolVar(&opts.tests, "tests-analysis", false, "Generate the per-test report")
	fs.BoolVar(&opts.timing, "timing-analysis", false, "Generate the per-population timing report")
	fs.BoolVar(&opts.fitnessOBE, "fitness-obe-analysis", false, "Generate the fitness and OBE report")
	fs.StringVar(&opts.only, "only", "", "Only process runs of this generator (random or asfault)")
	fs.IntVar(&opts.populationSize, "population-size", 25, "Expected number of individuals per population")
	fs.IntVar(&opts.timeLimit, "time-limit", services.NoTimeLimit, "Time budget in seconds, -1 disables truncation")
	fs.StringVar(&opts.configPath, "config", "", "Optional YAML file with classifier and artifact settings")
	fs.BoolVar(&opts.verbose, "verbose", false, "Show debug output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: asfault-reports --root-folder <dir> [options]

Turn AsFault experiment logs into CSV reports.

Every experiment.log below the root folder is classified from its path,
fingerprinted by content, and summarised into the requested reports.
Reports that already exist are never regenerated.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  asfault-reports --root-folder ./exps --timing-analysis --fitness-obe-analysis
  asfault-reports --root-folder ./exps --output-folder ./csv --tests-analysis --only asfault --time-limit 3600
`)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.rootFolder == "" {
		fmt.Fprintln(stdout, "No root folder")
		return exitOK
	}

	config, err := validate(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fs.Usage()
		return exitUsage
	}

	pipeline := entities.DefaultPipelineConfig()
	if opts.configPath != "" {
		loaded, err := yaml.NewConfigParser().ParseFile(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		pipeline = *loaded
	}

	orch, err := buildOrchestrator(pipeline, config, interfaces.NewStdoutLogger(stdout, opts.verbose))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	summary, err := orch.Process(ctx, opts.rootFolder)
	if summary != nil {
		printSummary(stdout, summary)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "Interrupted, stopped before the next run")
			return exitOK
		}
		// An unusable root yields an empty batch, not a usage error
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitOK
}

func validate(opts *options) (orchestrators.RunOrchestratorConfig, error) {
	config := orchestrators.RunOrchestratorConfig{
		Reports:        opts.reports(),
		PopulationSize: opts.populationSize,
		TimeLimit:      opts.timeLimit,
	}

	if opts.only != "" {
		generator, ok := entities.ParseGenerator(opts.only)
		if !ok {
			return config, fmt.Errorf("--only must be %q or %q, got %q", entities.GeneratorRandom, entities.GeneratorAsFault, opts.only)
		}
		config.Only = generator
	}
	if opts.timeLimit < services.NoTimeLimit {
		return config, fmt.Errorf("--time-limit must be -1 or a non-negative number of seconds, got %d", opts.timeLimit)
	}
	if opts.populationSize <= 0 {
		return config, fmt.Errorf("--population-size must be positive, got %d", opts.populationSize)
	}

	outputDir, err := filepath.Abs(opts.outputFolder)
	if err != nil {
		return config, fmt.Errorf("invalid --output-folder: %w", err)
	}
	config.OutputDir = outputDir
	return config, nil
}

func buildOrchestrator(pipeline entities.PipelineConfig, config orchestrators.RunOrchestratorConfig, logger *interfaces.StdoutLogger) (*orchestrators.RunOrchestrator, error) {
	// Layer 1: Adapters
	rules, err := services.CompileClassifierRules(pipeline.Classifier)
	if err != nil {
		return nil, err
	}
	inspector, err := testjson.NewInspector()
	if err != nil {
		return nil, err
	}
	resolver := gateways.NewArtifactResolver(pipeline.Artifacts)

	// Layer 2: Report generators
	generators := []ifgateways.ReportGenerator{
		gateways.NewTimingReport(),
		gateways.NewFitnessOBEReport(resolver, inspector),
		gateways.NewTestsReport(resolver, inspector),
	}

	// Layer 3: Orchestrator
	return orchestrators.NewRunOrchestrator(
		gateways.NewRunFinder(logger),
		services.NewClassifier(rules),
		gateways.NewContentFingerprinter(),
		populationlog.NewParser(pipeline.GenerationLimit, logger.With(interfaces.F("component", "log-parser"))),
		generators,
		gateways.FileExists,
		config,
		logger,
	), nil
}

func printSummary(w io.Writer, summary *orchestrators.BatchSummary) {
	fmt.Fprintf(w, "\nBatch %s: %d runs in %s\n", summary.BatchID, len(summary.Results), summary.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  processed: %d\n", summary.Count(orchestrators.RunProcessed))
	fmt.Fprintf(w, "  cached:    %d\n", summary.Count(orchestrators.RunCached))
	fmt.Fprintf(w, "  skipped:   %d\n", summary.Count(orchestrators.RunSkipped))
	fmt.Fprintf(w, "  failed:    %d\n", summary.Count(orchestrators.RunFailed))

	for _, r := range summary.Results {
		if r.Status != orchestrators.RunFailed {
			continue
		}
		fmt.Fprintf(w, "  ✗ %s (%s): %v\n", r.LogPath, r.Stage, r.Error)
	}
}
