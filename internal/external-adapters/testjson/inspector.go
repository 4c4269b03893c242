// Package testjson reads the per-test JSON artifacts written by the test generator.
package testjson

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
	"github.com/ochairo/asfault-reports/internal/domain/services"
)

//go:embed test_record.schema.json
var testRecordSchema []byte

const schemaURL = "mem:///test_record.schema.json"

type jsonTestRecord struct {
	TestID    json.RawMessage `json:"test_id"`
	Fitness   *float64        `json:"fitness"`
	Execution jsonExecution   `json:"execution"`
}

type jsonExecution struct {
	Result          string    `json:"result"`
	Reason          *string   `json:"reason"`
	MaximumDistance float64   `json:"maximum_distance"`
	AverageDistance float64   `json:"average_distance"`
	OBEs            []jsonOBE `json:"obes"`
}

type jsonOBE struct {
	Start       int     `json:"start"`
	End         int     `json:"end"`
	MaxDistance float64 `json:"max_distance"`
}

// Inspector validates and decodes test artifacts
type Inspector struct {
	schema *jsonschema.Schema
}

// NewInspector compiles the embedded test record schema
func NewInspector() (*Inspector, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(testRecordSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Inspector{schema: schema}, nil
}

// Inspect reads the full record of the test stored at path
func (i *Inspector) Inspect(path string) (*entities.TestRecord, error) {
	raw, err := i.load(path)
	if err != nil {
		return nil, err
	}

	record := &entities.TestRecord{
		TestID:          testIDString(raw.TestID),
		Result:          raw.Execution.Result,
		Fitness:         raw.Fitness,
		MaximumDistance: raw.Execution.MaximumDistance,
		AverageDistance: raw.Execution.AverageDistance,
		SourcePath:      path,
	}
	if raw.Execution.Reason != nil {
		record.Reason = *raw.Execution.Reason
	}
	record.OBEs = make([]entities.OBE, 0, len(raw.Execution.OBEs))
	for _, o := range raw.Execution.OBEs {
		record.OBEs = append(record.OBEs, entities.OBE{Start: o.Start, End: o.End, MaxDistance: o.MaxDistance})
	}
	return record, nil
}

// CountOBEs returns how many boundary events the artifact recorded
func (i *Inspector) CountOBEs(path string) (int, error) {
	raw, err := i.load(path)
	if err != nil {
		return 0, err
	}
	return len(raw.Execution.OBEs), nil
}

func (i *Inspector) load(path string) (*jsonTestRecord, error) {
	//nolint:gosec // G304: path is resolved from the run's output folder
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", services.ErrMissingTestArtifact, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", services.ErrMalformedTestArtifact, path, err)
	}

	var payload any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", services.ErrMalformedTestArtifact, path, err)
	}
	if err := i.schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", services.ErrMalformedTestArtifact, path, err)
	}

	var record jsonTestRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", services.ErrMalformedTestArtifact, path, err)
	}
	return &record, nil
}

func testIDString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(v, 10)
		}
		return n.String()
	}
	return string(raw)
}
