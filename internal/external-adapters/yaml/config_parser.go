// Package yaml provides YAML-based pipeline configuration parsing.
package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Classifier *yamlClassifier `yaml:"classifier"`
	Artifacts  *yamlArtifacts  `yaml:"artifacts"`
	Log        *yamlLog        `yaml:"log"`
}

type yamlClassifier struct {
	Generator   []yamlPattern `yaml:"generator"`
	Cardinality []yamlPattern `yaml:"cardinality"`
	MapSize     []yamlPattern `yaml:"map_size"`
}

type yamlPattern struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

type yamlArtifacts struct {
	OutputDirs []string `yaml:"output_dirs"`
	Stages     []string `yaml:"stages"`
	IDWidth    int      `yaml:"id_width"`
}

type yamlLog struct {
	GenerationLimit int `yaml:"generation_limit"`
}

// ConfigParser parses YAML pipeline configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML configuration file. Sections left out keep their defaults.
func (p *ConfigParser) ParseFile(filePath string) (*entities.PipelineConfig, error) {
	//nolint:gosec // G304: filePath is the user supplied --config flag
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a PipelineConfig
func (p *ConfigParser) Parse(data []byte) (*entities.PipelineConfig, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultPipelineConfig()

	if raw.Classifier != nil {
		if err := applyPatterns(&cfg.Classifier.Generator, raw.Classifier.Generator, "generator", isGenerator); err != nil {
			return nil, err
		}
		if err := applyPatterns(&cfg.Classifier.Cardinality, raw.Classifier.Cardinality, "cardinality", isCardinality); err != nil {
			return nil, err
		}
		if err := applyPatterns(&cfg.Classifier.MapSize, raw.Classifier.MapSize, "map_size", isMapSize); err != nil {
			return nil, err
		}
	}

	if raw.Artifacts != nil {
		if len(raw.Artifacts.OutputDirs) > 0 {
			cfg.Artifacts.OutputDirs = raw.Artifacts.OutputDirs
		}
		if len(raw.Artifacts.Stages) > 0 {
			cfg.Artifacts.Stages = raw.Artifacts.Stages
		}
		if raw.Artifacts.IDWidth < 0 {
			return nil, fmt.Errorf("artifacts.id_width must not be negative")
		}
		if raw.Artifacts.IDWidth > 0 {
			cfg.Artifacts.IDWidth = raw.Artifacts.IDWidth
		}
	}

	if raw.Log != nil {
		if raw.Log.GenerationLimit < 0 {
			return nil, fmt.Errorf("log.generation_limit must not be negative")
		}
		if raw.Log.GenerationLimit > 0 {
			cfg.GenerationLimit = raw.Log.GenerationLimit
		}
	}

	return &cfg, nil
}

func isGenerator(s string) bool {
	_, ok := entities.ParseGenerator(s)
	return ok
}

func isCardinality(s string) bool {
	_, ok := entities.ParseCardinality(s)
	return ok
}

func isMapSize(s string) bool {
	_, ok := entities.ParseMapSize(s)
	return ok
}

// applyPatterns replaces a default table with the configured one, if any.
// Every label must be one of the section's known values.
func applyPatterns(dst *[]entities.PatternRule, src []yamlPattern, section string, known func(string) bool) error {
	if len(src) == 0 {
		return nil
	}
	rules := make([]entities.PatternRule, 0, len(src))
	for i, yp := range src {
		if yp.Label == "" || yp.Pattern == "" {
			return fmt.Errorf("classifier.%s[%d] must have a label and a pattern", section, i)
		}
		if !known(yp.Label) {
			return fmt.Errorf("classifier.%s[%d]: unknown label %q", section, i, yp.Label)
		}
		rules = append(rules, entities.PatternRule{Label: yp.Label, Pattern: yp.Pattern})
	}
	*dst = rules
	return nil
}
