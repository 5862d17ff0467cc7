package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aakashsen704/virtual-memory-simulator/cpu/models"
)

func TestParseReferenceString(t *testing.T) {
	input := `# belady
1 2 3 4
1,2,5, 1
	2	3

4,5
`
	refs, err := ParseReferenceString(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}
	if len(refs) != len(want) {
		t.Fatalf("Expected %d references, got %d (%v)", len(want), len(refs), refs)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("Reference %d: expected %d, got %d", i, want[i], refs[i])
		}
	}
}

func TestParseReferenceString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a number", "1 2 x"},
		{"negative page", "1 -2 3"},
		{"float", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReferenceString(strings.NewReader(tt.input))
			if !errors.Is(err, models.ErrInvalidTrace) {
				t.Errorf("Expected ErrInvalidTrace, got %v", err)
			}
		})
	}
}

func TestParseReferenceString_Empty(t *testing.T) {
	refs, err := ParseReferenceString(strings.NewReader("# nada\n\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("Expected no references, got %v", refs)
	}
}

func TestLoadReferenceString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	if err := os.WriteFile(path, []byte("7 0 1\n2 0 3\n"), 0644); err != nil {
		t.Fatalf("Failed to write trace: %v", err)
	}

	refs, err := LoadReferenceString(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(refs) != 6 || refs[0] != 7 || refs[5] != 3 {
		t.Errorf("Unexpected references %v", refs)
	}

	if _, err := LoadReferenceString(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
