// Package services contains the pure decision logic of the report pipeline.
package services

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/ochairo/asfault-reports/internal/domain/entities"
)

// Matcher pairs a label with the predicate that selects it
type Matcher struct {
	Label     string
	Predicate func(string) bool
}

// RegexMatcher builds a Matcher from a regular expression
func RegexMatcher(label, pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Matcher{}, fmt.Errorf("invalid pattern for %q: %w", label, err)
	}
	return Matcher{Label: label, Predicate: re.MatchString}, nil
}

// ClassifierRules is the ordered pattern table; the first matching entry wins
type ClassifierRules struct {
	Generator   []Matcher // matched against the log path
	Cardinality []Matcher // matched against the grandparent directory path
	MapSize     []Matcher // matched against the log path
}

// CompileClassifierRules compiles a pattern table into matchers, keeping its order
func CompileClassifierRules(patterns entities.ClassifierPatterns) (ClassifierRules, error) {
	compile := func(rules []entities.PatternRule) ([]Matcher, error) {
		matchers := make([]Matcher, 0, len(rules))
		for _, rule := range rules {
			m, err := RegexMatcher(rule.Label, rule.Pattern)
			if err != nil {
				return nil, err
			}
			matchers = append(matchers, m)
		}
		return matchers, nil
	}

	var rules ClassifierRules
	var err error
	if rules.Generator, err = compile(patterns.Generator); err != nil {
		return ClassifierRules{}, fmt.Errorf("generator: %w", err)
	}
	if rules.Cardinality, err = compile(patterns.Cardinality); err != nil {
		return ClassifierRules{}, fmt.Errorf("cardinality: %w", err)
	}
	if rules.MapSize, err = compile(patterns.MapSize); err != nil {
		return ClassifierRules{}, fmt.Errorf("map size: %w", err)
	}
	return rules, nil
}

// DefaultClassifierRules returns the compiled default pattern table
func DefaultClassifierRules() ClassifierRules {
	rules, err := CompileClassifierRules(entities.DefaultClassifierPatterns())
	if err != nil {
		panic(err)
	}
	return rules
}

// Classifier derives run labels from file paths
type Classifier struct {
	rules ClassifierRules
}

// NewClassifier creates a classifier over the given rule table
func NewClassifier(rules ClassifierRules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify resolves all three labels of the run whose log lives at logPath.
// A run is either fully classified or rejected with ErrUnclassifiableRun.
func (c *Classifier) Classify(logPath string) (entities.RunLabels, error) {
	grandParent := filepath.Dir(filepath.Dir(logPath))

	generator, ok := firstMatch(c.rules.Generator, logPath)
	if !ok {
		return entities.RunLabels{}, fmt.Errorf("%w: unknown generator for %s", ErrUnclassifiableRun, logPath)
	}
	cardinality, ok := firstMatch(c.rules.Cardinality, grandParent)
	if !ok {
		return entities.RunLabels{}, fmt.Errorf("%w: unknown cardinality for %s", ErrUnclassifiableRun, grandParent)
	}
	mapSize, ok := firstMatch(c.rules.MapSize, logPath)
	if !ok {
		return entities.RunLabels{}, fmt.Errorf("%w: unknown map size for %s", ErrUnclassifiableRun, logPath)
	}

	// Labels end up in report file names, so only the known values are accepted
	labels := entities.RunLabels{}
	if labels.Generator, ok = entities.ParseGenerator(generator); !ok {
		return entities.RunLabels{}, fmt.Errorf("%w: invalid generator label %q", ErrUnclassifiableRun, generator)
	}
	if labels.Cardinality, ok = entities.ParseCardinality(cardinality); !ok {
		return entities.RunLabels{}, fmt.Errorf("%w: invalid cardinality label %q", ErrUnclassifiableRun, cardinality)
	}
	if labels.MapSize, ok = entities.ParseMapSize(mapSize); !ok {
		return entities.RunLabels{}, fmt.Errorf("%w: invalid map size label %q", ErrUnclassifiableRun, mapSize)
	}
	return labels, nil
}

func firstMatch(matchers []Matcher, s string) (string, bool) {
	for _, m := range matchers {
		if m.Predicate != nil && m.Predicate(s) {
			return m.Label, true
		}
	}
	return "", false
}
