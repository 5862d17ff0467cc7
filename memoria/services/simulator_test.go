package services

import (
	"errors"
	"testing"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
)

func simConfig(algorithm models.Algorithm, numPages, numFrames, tlbEntries int) models.SimulationConfig {
	return models.SimulationConfig{
		NumPages:   numPages,
		NumFrames:  numFrames,
		PageSize:   4096,
		TlbEntries: tlbEntries,
		Algorithm:  algorithm,
	}
}

func runSimulation(t *testing.T, config models.SimulationConfig, refs []int) *Simulator {
	t.Helper()
	simulator, err := NewSimulator(config, refs)
	if err != nil {
		t.Fatalf("Unexpected error creating simulator: %v", err)
	}
	if err := simulator.RunTrace(refs); err != nil {
		t.Fatalf("Unexpected error running trace: %v", err)
	}
	return simulator
}

func repeat(refs []int, times int) []int {
	out := make([]int, 0, len(refs)*times)
	for i := 0; i < times; i++ {
		out = append(out, refs...)
	}
	return out
}

func TestSimulator_FIFOBasic(t *testing.T) {
	simulator := runSimulation(t, simConfig(models.FIFO, 10, 3, 4), beladyString)

	stats := simulator.Statistics()
	if stats.PageFaults != 9 {
		t.Errorf("Expected 9 page faults, got %d", stats.PageFaults)
	}
	if stats.TotalAccesses != len(beladyString) {
		t.Errorf("Expected %d accesses, got %d", len(beladyString), stats.TotalAccesses)
	}
	if stats.Algorithm != models.FIFO {
		t.Errorf("Expected algorithm FIFO, got %s", stats.Algorithm)
	}
}

func TestSimulator_LRUBasic(t *testing.T) {
	simulator := runSimulation(t, simConfig(models.LRU, 10, 3, 4), beladyString)

	if faults := simulator.Statistics().PageFaults; faults > 10 {
		t.Errorf("LRU faults too high: %d", faults)
	}
}

func TestSimulator_SufficientFramesOnlyColdFaults(t *testing.T) {
	distinct := []int{4, 7, 1, 9}
	refs := repeat(distinct, 5)

	for _, algorithm := range models.Algorithms {
		for _, frames := range []int{4, 6} {
			simulator := runSimulation(t, simConfig(algorithm, 20, frames, 2), refs)
			if faults := simulator.Statistics().PageFaults; faults != len(distinct) {
				t.Errorf("%s/%d frames: Expected %d faults, got %d", algorithm, frames, len(distinct), faults)
			}
		}
	}
}

func TestSimulator_TLBHits(t *testing.T) {
	refs := repeat([]int{1, 2, 3}, 3)
	simulator := runSimulation(t, simConfig(models.LRU, 20, 10, 4), refs)

	stats := simulator.Statistics()
	if stats.TlbHits != 6 || stats.TlbMisses != 3 {
		t.Errorf("Expected 6 TLB hits and 3 misses, got %d and %d", stats.TlbHits, stats.TlbMisses)
	}
	if stats.TlbHitRate <= 0 {
		t.Errorf("TLB hit rate should be positive, got %f", stats.TlbHitRate)
	}
}

func TestSimulator_AddressTranslation(t *testing.T) {
	simulator, err := NewSimulator(simConfig(models.FIFO, 100, 10, 4), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	physical, fault, tlbHit, err := simulator.Translate(8192, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !fault || tlbHit {
		t.Errorf("First access should be a page fault and a TLB miss (fault=%v, tlbHit=%v)", fault, tlbHit)
	}
	if physical != 0 {
		t.Errorf("Expected page 2 in frame 0 (physical 0), got %d", physical)
	}
	entry, _ := simulator.PageTableEntry(2)
	if !entry.Valid || entry.Frame != 0 {
		t.Errorf("Expected page 2 valid in frame 0, got %+v", entry)
	}

	physical, fault, tlbHit, err = simulator.Translate(8200, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fault || !tlbHit {
		t.Errorf("Second access to same page should not fault and should hit the TLB (fault=%v, tlbHit=%v)", fault, tlbHit)
	}
	if physical != 8 {
		t.Errorf("Expected physical address 8, got %d", physical)
	}
}

func TestSimulator_OffsetPreserved(t *testing.T) {
	config := simConfig(models.Clock, 16, 4, 2)
	config.PageSize = 256
	simulator, err := NewSimulator(config, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 0; i < 200; i++ {
		virtual := (i*977 + 13) % (16 * 256)
		physical, _, _, err := simulator.Translate(virtual, i%3 == 0)
		if err != nil {
			t.Fatalf("Unexpected error translating %d: %v", virtual, err)
		}
		if physical%256 != virtual%256 {
			t.Errorf("Offset not preserved: virtual %d -> physical %d", virtual, physical)
		}
		if physical/256 >= 4 {
			t.Errorf("Physical address %d outside of the 4 frames", physical)
		}
	}
}

func TestSimulator_InvariantsHoldAfterEveryReference(t *testing.T) {
	refs := []int{0, 3, 5, 3, 7, 1, 0, 9, 3, 5, 2, 8, 0, 1, 4, 4, 6, 3, 9, 2, 7, 0, 5, 1}

	for _, algorithm := range models.Algorithms {
		simulator, err := NewSimulator(simConfig(algorithm, 10, 4, 2), refs)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algorithm, err)
		}

		for i, page := range refs {
			_, wasResident := simulator.pageToFrame[page]

			_, fault, _, err := simulator.Translate(page*4096, false)
			if err != nil {
				t.Fatalf("%s: reference %d: %v", algorithm, i, err)
			}
			if fault == wasResident {
				t.Errorf("%s: reference %d (page %d) fault=%v but resident=%v", algorithm, i, page, fault, wasResident)
			}
			if len(simulator.ResidentPages()) > 4 {
				t.Errorf("%s: more resident pages than frames: %v", algorithm, simulator.ResidentPages())
			}
			if err := simulator.CheckConsistency(); err != nil {
				t.Errorf("%s: reference %d: %v", algorithm, i, err)
			}

			tlbFrame := models.NoFrame
			for _, entry := range simulator.TLBEntries() {
				if entry.PageNumber == page {
					tlbFrame = entry.FrameNumber
				}
			}
			if tlbFrame != simulator.pageToFrame[page] {
				t.Errorf("%s: TLB should map page %d to frame %d, got %d", algorithm, page, simulator.pageToFrame[page], tlbFrame)
			}
		}
	}
}

func TestSimulator_EvictionInvalidatesTLB(t *testing.T) {
	simulator, err := NewSimulator(simConfig(models.FIFO, 10, 1, 4), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_ = simulator.RunTrace([]int{1, 2})

	entries := simulator.TLBEntries()
	if len(entries) != 1 || entries[0].PageNumber != 2 || entries[0].FrameNumber != 0 {
		t.Errorf("Expected only page 2 -> frame 0 in TLB, got %+v", entries)
	}

	_, fault, tlbHit, _ := simulator.Translate(1*4096, false)
	if !fault || tlbHit {
		t.Errorf("Evicted page must fault and miss the TLB (fault=%v, tlbHit=%v)", fault, tlbHit)
	}
}

func TestSimulator_AccessCountSurvivesEviction(t *testing.T) {
	simulator := runSimulation(t, simConfig(models.LRU, 10, 1, 2), []int{1, 2, 1})

	entry, _ := simulator.PageTableEntry(1)
	if entry.AccessCount != 2 || !entry.Valid {
		t.Errorf("Expected page 1 valid with 2 accesses, got %+v", entry)
	}

	entry, _ = simulator.PageTableEntry(2)
	if entry.Valid || entry.Frame != models.NoFrame || entry.AccessCount != 1 {
		t.Errorf("Expected page 2 invalid with 1 access, got %+v", entry)
	}
}

func TestSimulator_WriteMarksModified(t *testing.T) {
	simulator, err := NewSimulator(simConfig(models.FIFO, 10, 3, 4), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := simulator.RunTraceWithWrites([]int{1, 2, 1}, map[int]bool{1: true}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entry, _ := simulator.PageTableEntry(2)
	if !entry.Modified {
		t.Errorf("Expected page 2 modified")
	}
	entry, _ = simulator.PageTableEntry(1)
	if entry.Modified {
		t.Errorf("Expected page 1 not modified")
	}
}

func TestSimulator_FramesAssignedInOrder(t *testing.T) {
	simulator := runSimulation(t, simConfig(models.FIFO, 10, 3, 4), []int{7, 3, 5})

	for page, want := range map[int]int{7: 0, 3: 1, 5: 2} {
		entry, _ := simulator.PageTableEntry(page)
		if entry.Frame != want {
			t.Errorf("Expected page %d in frame %d, got %d", page, want, entry.Frame)
		}
	}
}

func TestSimulator_OptimalIsBest(t *testing.T) {
	references := [][]int{
		repeat(beladyString, 5),
		repeat([]int{1, 2, 3, 4, 5, 1, 2, 3, 6, 7}, 5),
		{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1},
	}

	for _, refs := range references {
		for _, frames := range []int{2, 3, 4, 5} {
			optimal := runSimulation(t, simConfig(models.Optimal, 10, frames, 4), refs).Statistics().PageFaults

			for _, algorithm := range []models.Algorithm{models.FIFO, models.LRU, models.LFU, models.Clock} {
				faults := runSimulation(t, simConfig(algorithm, 10, frames, 4), refs).Statistics().PageFaults
				if optimal > faults {
					t.Errorf("%d frames: OPTIMAL (%d) should not fault more than %s (%d)", frames, optimal, algorithm, faults)
				}
			}
		}
	}
}

func TestSimulator_MoreFramesNeverHurtLRUAndOptimal(t *testing.T) {
	refs := repeat([]int{1, 2, 3, 4, 5, 1, 2, 3, 6, 7}, 5)

	for _, algorithm := range []models.Algorithm{models.LRU, models.Optimal} {
		previous := -1
		for _, frames := range []int{3, 5, 8} {
			faults := runSimulation(t, simConfig(algorithm, 20, frames, 4), refs).Statistics().PageFaults
			if previous != -1 && faults > previous {
				t.Errorf("%s: faults grew from %d to %d with %d frames", algorithm, previous, faults, frames)
			}
			previous = faults
		}
	}
}

func TestSimulator_FIFOBeladyAnomaly(t *testing.T) {
	three := runSimulation(t, simConfig(models.FIFO, 10, 3, 4), beladyString).Statistics().PageFaults
	four := runSimulation(t, simConfig(models.FIFO, 10, 4, 4), beladyString).Statistics().PageFaults

	if three != 9 || four != 10 {
		t.Errorf("Expected 9 faults with 3 frames and 10 with 4, got %d and %d", three, four)
	}
}

func TestNewSimulator_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config models.SimulationConfig
		refs   []int
	}{
		{"optimal sin referencias", simConfig(models.Optimal, 10, 3, 4), nil},
		{"mas frames que paginas", simConfig(models.FIFO, 3, 4, 4), nil},
		{"paginas en cero", simConfig(models.FIFO, 0, 0, 4), nil},
		{"tlb en cero", simConfig(models.LRU, 10, 3, 0), nil},
		{"tam pagina negativo", models.SimulationConfig{NumPages: 10, NumFrames: 3, PageSize: -1, TlbEntries: 4, Algorithm: models.LRU}, nil},
		{"algoritmo desconocido", simConfig("RANDOM", 10, 3, 4), nil},
	}

	for _, tt := range tests {
		simulator, err := NewSimulator(tt.config, tt.refs)
		if !errors.Is(err, models.ErrConfig) {
			t.Errorf("%s: Expected ErrConfig, got %v", tt.name, err)
		}
		if simulator != nil {
			t.Errorf("%s: Expected no simulator", tt.name)
		}
	}
}

func TestSimulator_InvalidAddress(t *testing.T) {
	simulator, err := NewSimulator(simConfig(models.LRU, 4, 2, 2), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, _, _, err := simulator.Translate(4*4096, false); !errors.Is(err, models.ErrInvalidPage) {
		t.Errorf("Expected ErrInvalidPage, got %v", err)
	}
	if _, _, _, err := simulator.Translate(-1, false); !errors.Is(err, models.ErrInvalidPage) {
		t.Errorf("Expected ErrInvalidPage, got %v", err)
	}
	if err := simulator.RunTrace([]int{0, 9}); !errors.Is(err, models.ErrInvalidPage) {
		t.Errorf("Expected ErrInvalidPage from trace, got %v", err)
	}

	stats := simulator.Statistics()
	if stats.TotalAccesses != 1 || stats.PageFaults != 1 {
		t.Errorf("Expected only the valid reference to be counted, got %+v", stats)
	}
}

func TestSimulator_TraceRejectsHugePage(t *testing.T) {
	simulator, _ := NewSimulator(simConfig(models.FIFO, 10, 3, 2), nil)

	// (1<<52)+1 por 4096 desborda int y daría la dirección de la página 1
	if err := simulator.RunTrace([]int{(1 << 52) + 1}); !errors.Is(err, models.ErrInvalidPage) {
		t.Errorf("Expected ErrInvalidPage, got %v", err)
	}
	if pages := simulator.ResidentPages(); len(pages) != 0 {
		t.Errorf("Expected no resident pages, got %v", pages)
	}
	if stats := simulator.Statistics(); stats.TotalAccesses != 0 {
		t.Errorf("Expected no accesses counted, got %+v", stats)
	}
}

func TestSimulator_StatisticsEmpty(t *testing.T) {
	simulator, _ := NewSimulator(simConfig(models.FIFO, 4, 2, 2), nil)

	stats := simulator.Statistics()
	if stats.PageFaultRate != 0 || stats.TlbHitRate != 0 {
		t.Errorf("Expected zero rates without accesses, got %+v", stats)
	}
}
