package gateways

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestContentFingerprinter_KnownDigests(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{name: "empty file", content: []byte(""), want: "d41d8cd98f00b204e9800998ecf8427e"},
		{name: "simple content", content: []byte("Hello, World!"), want: "65a8e27d8879283831b664bd8b7f0ad4"},
	}

	fp := NewContentFingerprinter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "experiment.log")
			if err := os.WriteFile(path, tt.content, 0600); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := fp.Fingerprint(path)
			if err != nil {
				t.Fatalf("Fingerprint() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Fingerprint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentFingerprinter_DeterministicAcrossChunks(t *testing.T) {
	tmpDir := t.TempDir()
	// Spans several read chunks
	content := bytes.Repeat([]byte("POPULATION step=0 generation_time=1.0\n"), 5000)

	first := filepath.Join(tmpDir, "a.log")
	second := filepath.Join(tmpDir, "b.log")
	for _, p := range []string{first, second} {
		if err := os.WriteFile(p, content, 0600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	fp := NewContentFingerprinter()
	sumA, err := fp.Fingerprint(first)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	sumB, err := fp.Fingerprint(second)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if sumA != sumB {
		t.Errorf("identical bytes hashed differently: %s vs %s", sumA, sumB)
	}

	content[len(content)/2] ^= 0x01
	if err := os.WriteFile(second, content, 0600); err != nil {
		t.Fatalf("Failed to rewrite test file: %v", err)
	}
	sumChanged, err := fp.Fingerprint(second)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if sumChanged == sumA {
		t.Error("changing one byte should change the digest")
	}
}

func TestContentFingerprinter_MissingFile(t *testing.T) {
	if _, err := NewContentFingerprinter().Fingerprint("/nonexistent/experiment.log"); err == nil {
		t.Error("Fingerprint() with non-existent file should return error")
	}
}
