package services

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
)

// CompareAlgorithms corre la cadena de referencias con cada algoritmo y cada cantidad de frames.
// Cada corrida usa su propio simulador, en su propia goroutine. Los resultados vienen
// ordenados por frames y, dentro de cada cantidad de frames, en el orden de algorithms.
func CompareAlgorithms(base models.SimulationConfig, referenceString []int, algorithms []models.Algorithm, frameCounts []int) ([]models.ComparisonResult, error) {
	if len(referenceString) == 0 {
		return nil, fmt.Errorf("%w: la cadena de referencias está vacía", models.ErrConfig)
	}

	results := make([]models.ComparisonResult, len(frameCounts)*len(algorithms))
	errs := make([]error, len(results))

	var wg sync.WaitGroup
	for i, numFrames := range frameCounts {
		for j, algorithm := range algorithms {
			index := i*len(algorithms) + j
			config := base
			config.NumFrames = numFrames
			config.Algorithm = algorithm

			wg.Add(1)
			go func() {
				defer wg.Done()
				results[index], errs[index] = runComparison(config, referenceString)
			}()
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s con %d frames: %w", results[i].Algorithm, results[i].NumFrames, err)
		}
	}
	return results, nil
}

func runComparison(config models.SimulationConfig, referenceString []int) (models.ComparisonResult, error) {
	result := models.ComparisonResult{Algorithm: config.Algorithm, NumFrames: config.NumFrames}

	simulator, err := NewSimulator(config, referenceString)
	if err != nil {
		return result, err
	}
	if err := simulator.RunTrace(referenceString); err != nil {
		return result, err
	}

	stats := simulator.Statistics()
	result.PageFaults = stats.PageFaults
	result.PageFaultRate = stats.PageFaultRate
	result.TlbHitRate = stats.TlbHitRate

	slog.Debug(fmt.Sprintf("%s - %d frames: %d page faults (%.2f%%)",
		config.Algorithm, config.NumFrames, stats.PageFaults, stats.PageFaultRate))
	return result, nil
}
