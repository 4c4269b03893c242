package main

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // G501: report names use the MD5 of the log
	"encoding/csv"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runLog = `2018-09-06 08:02:04 INFO POPULATION step=0 generation_time=2 execution_time=3 invalid=1 filtered=0
2018-09-06 08:02:04 INFO INDIVIDUAL test_id=1 origin=initial
2018-09-06 08:02:04 INFO INDIVIDUAL test_id=2 origin=initial
2018-09-06 08:02:05 INFO FITNESS test_id=1 value=0.5
2018-09-06 08:02:05 INFO FITNESS test_id=2 value=1.5
2018-09-06 08:03:00 INFO POPULATION step=1 generation_time=1 execution_time=4 invalid=0 filtered=2
2018-09-06 08:03:00 INFO INDIVIDUAL test_id=2 origin=evolved
2018-09-06 08:03:00 INFO INDIVIDUAL test_id=3 origin=padded
2018-09-06 08:03:01 INFO FITNESS test_id=3 value=2
`

var testArtifacts = map[string]string{
	"test_0001.json": `{"test_id": 1, "execution": {"result": "PASS", "obes": []}}`,
	"test_0002.json": `{"test_id": 2, "execution": {"result": "FAIL", "reason": "off_track", "maximum_distance": 3.5, "average_distance": 1.25, "obes": [{"start": 1, "end": 4}]}}`,
	"test_0003.json": `{"test_id": 3, "execution": {"result": "FAIL", "reason": "off_track", "obes": [{"start": 2, "end": 3}, {"start": 8, "end": 9}]}}`,
}

// writeRun creates <root>/<rel>/experiment.log with its test artifacts
func writeRun(t *testing.T, root, rel, log string, withArtifacts bool) string {
	t.Helper()
	runDir := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(runDir, 0750))
	logPath := filepath.Join(runDir, "experiment.log")
	require.NoError(t, os.WriteFile(logPath, []byte(log), 0600))

	if withArtifacts {
		final := filepath.Join(runDir, "output", "final")
		require.NoError(t, os.MkdirAll(final, 0750))
		for name, content := range testArtifacts {
			require.NoError(t, os.WriteFile(filepath.Join(final, name), []byte(content), 0600))
		}
	}
	return logPath
}

func md5Hex(s string) string {
	//nolint:gosec // G401: matches the fingerprint used in report names
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	//nolint:gosec // G304: test output path
	f, err := os.Open(path)
	require.NoError(t, err)
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_NoRootFolder(t *testing.T) {
	code, stdout, _ := runCLI(t)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "No root folder")
}

func TestRun_InvalidFlags(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "unknown generator", args: []string{"--root-folder", root, "--only", "genetic"}, msg: "--only"},
		{name: "time limit below -1", args: []string{"--root-folder", root, "--time-limit", "-5"}, msg: "--time-limit"},
		{name: "non-positive population size", args: []string{"--root-folder", root, "--population-size", "0"}, msg: "--population-size"},
		{name: "missing config file", args: []string{"--root-folder", root, "--config", filepath.Join(root, "nope.yml")}, msg: "nope.yml"},
		{name: "unknown flag", args: []string{"--bogus"}, msg: "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)

			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "--help")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "Usage: asfault-reports")
}

func TestRun_GeneratesAllReports(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeRun(t, root, "Single/2018-09-06T08-02-03/000/000_lanedist_0500_0075", runLog, true)

	code, stdout, stderr := runCLI(t,
		"--root-folder", root,
		"--output-folder", out,
		"--timing-analysis", "--fitness-obe-analysis", "--tests-analysis")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "processed: 1")

	prefix := filepath.Join(out, "asfault_single_tiny_"+md5Hex(runLog))

	timing := readCSV(t, prefix+"_population_timing.csv")
	assert.Equal(t, [][]string{
		{"evolution_step", "evolved_individuals", "padded_individuals", "invalid_tests", "filtered_tests", "generation_time", "execution_time"},
		{"0", "0", "0", "1", "0", "2.0", "3.0"},
		{"1", "1", "1", "0", "2", "1.0", "4.0"},
	}, timing)

	fitness := readCSV(t, prefix+"_population_fitness_obe.csv")
	assert.Equal(t, [][]string{
		{"evolution_step", "cumulative_obe", "cumulative_fitness"},
		{"0", "1", "2.0"},
		{"1", "3", "3.5"},
	}, fitness)

	tests := readCSV(t, prefix+".csv")
	require.Len(t, tests, 3)
	assert.Equal(t, "test_id", tests[0][0])
	assert.Equal(t, []string{"2", "FAIL", "off_track", "1.5", "1", "3.5", "1.25"}, tests[1])
	assert.Equal(t, "3", tests[2][0])
}

func TestRun_SecondInvocationIsCached(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeRun(t, root, "Multi/ts/001/001_random_1000_0025", runLog, true)
	args := []string{"--root-folder", root, "--output-folder", out, "--timing-analysis"}

	code, stdout, _ := runCLI(t, args...)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "processed: 1")

	report := filepath.Join(out, "random_multi_small_"+md5Hex(runLog)+"_population_timing.csv")
	require.NoError(t, os.WriteFile(report, []byte("sentinel\n"), 0600))

	code, stdout, _ = runCLI(t, args...)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "cached:    1")

	data, err := os.ReadFile(report) //nolint:gosec // G304: test output path
	require.NoError(t, err)
	assert.Equal(t, "sentinel\n", string(data), "existing report must not be overwritten")
}

func TestRun_FailuresDoNotStopTheBatch(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	// No artifacts: the fitness report cannot be built for this run
	writeRun(t, root, "Single/ts/000/000_lanedist_0500_0075", runLog, false)
	writeRun(t, root, "Single/ts/001/001_random_2000_0025", runLog+"# second\n", true)
	writeRun(t, root, "Single/ts/002/002_unknown_2000_0025", runLog, true)

	code, stdout, _ := runCLI(t,
		"--root-folder", root,
		"--output-folder", out,
		"--fitness-obe-analysis")
	require.Equal(t, exitOK, code)

	assert.Contains(t, stdout, "processed: 1")
	assert.Contains(t, stdout, "skipped:   1")
	assert.Contains(t, stdout, "failed:    1")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the healthy run should leave a report")
	assert.True(t, strings.HasPrefix(entries[0].Name(), "random_single_large_"))
}

func TestRun_OnlyAndTimeLimit(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeRun(t, root, "Single/ts/000/000_lanedist_0500_0075", runLog, true)
	writeRun(t, root, "Single/ts/001/001_random_0500_0075", runLog+"# random\n", true)

	code, stdout, _ := runCLI(t,
		"--root-folder", root,
		"--output-folder", out,
		"--timing-analysis",
		"--only", "asfault",
		"--time-limit", "5")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "skipped:   1")

	rows := readCSV(t, filepath.Join(out, "asfault_single_tiny_"+md5Hex(runLog)+"_population_timing.csv"))
	assert.Len(t, rows, 2, "header plus the first population, which reaches the 5s budget")
}

func TestRun_ConfigOverridesLayout(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	logPath := writeRun(t, root, "Single/ts/000/000_lanedist_0500_0075", runLog, false)

	// Artifacts live in a non-default stage directory
	stage := filepath.Join(filepath.Dir(logPath), "output", "archive")
	require.NoError(t, os.MkdirAll(stage, 0750))
	for name, content := range testArtifacts {
		require.NoError(t, os.WriteFile(filepath.Join(stage, name), []byte(content), 0600))
	}

	config := filepath.Join(t.TempDir(), "reports.yml")
	require.NoError(t, os.WriteFile(config, []byte("artifacts:\n  stages: [archive]\n"), 0600))

	code, stdout, stderr := runCLI(t,
		"--root-folder", root,
		"--output-folder", out,
		"--config", config,
		"--fitness-obe-analysis")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "processed: 1")
}

func TestRun_MissingRootFolderIsAnEmptyBatch(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	code, _, stderr := runCLI(t, "--root-folder", missing, "--timing-analysis")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "nope")
}
