package yaml

import (
	"testing"
)

// FuzzConfigParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzConfigParser -fuzztime=30s
func FuzzConfigParser(f *testing.F) {
	f.Add([]byte(`classifier:
  generator:
    - label: random
      pattern: '.*_random_.*$'
`))
	f.Add([]byte(`artifacts:
  output_dirs: [output, .asfaultenv/output]
  stages: [execs, final]
  id_width: 4
log:
  generation_limit: 50
`))
	f.Add([]byte(""))
	f.Add([]byte("classifier: [1, 2"))

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, err := NewConfigParser().Parse(data)
		if err != nil {
			return
		}
		if cfg.GenerationLimit <= 0 {
			t.Errorf("GenerationLimit = %d, must stay positive", cfg.GenerationLimit)
		}
		if cfg.Artifacts.IDWidth <= 0 {
			t.Errorf("IDWidth = %d, must stay positive", cfg.Artifacts.IDWidth)
		}
	})
}
