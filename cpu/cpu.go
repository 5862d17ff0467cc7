package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/aakashsen704/virtual-memory-simulator/cpu/models"
	"github.com/aakashsen704/virtual-memory-simulator/cpu/services"
	memoriaModel "github.com/aakashsen704/virtual-memory-simulator/memoria/models"
	"github.com/aakashsen704/virtual-memory-simulator/utils/config"
	"github.com/aakashsen704/virtual-memory-simulator/utils/log"
)

const (
	//NO borrar el comentario de ConfigPath
	ConfigPath = "cpu/configs/cpu.json" //"./configs/cpu.json"
)

func main() {
	configPath := ConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config.InitConfig(configPath, &models.CpuConfig)

	logPath, err := log.BuildLogPath("cpu")
	if err != nil {
		slog.Error("No se pudo construir el log path", "err", err)
		return
	}
	log.InitLogger(logPath, models.CpuConfig.LogLevel)

	slog.Debug(fmt.Sprintf("Memoria en %s:%d", models.CpuConfig.IpMemory, models.CpuConfig.PortMemory))

	refs, err := services.LoadReferenceString(models.CpuConfig.TracePath)
	if err != nil {
		slog.Error("No se pudo cargar la traza", "error", err)
		os.Exit(1)
	}

	if err := services.RequestMemoryConfig(); err != nil {
		slog.Error("No se pudo obtener la configuración de Memoria", "error", err)
		os.Exit(1)
	}

	if err := services.ResetMemory(refs); err != nil {
		slog.Error("No se pudo reiniciar Memoria", "error", err)
		os.Exit(1)
	}

	if _, err := services.ReplayTrace(refs, models.CpuConfig.WriteEvery); err != nil {
		slog.Error("Falló la reproducción de la traza", "error", err)
		os.Exit(1)
	}

	stats, err := services.RequestStatistics()
	if err != nil {
		slog.Error("No se pudieron obtener las estadísticas", "error", err)
		os.Exit(1)
	}
	printStatistics(stats)

	if len(models.CpuConfig.CompareAlgorithms) == 0 {
		return
	}

	results, err := services.RequestComparison(refs, models.CpuConfig.CompareAlgorithms, models.CpuConfig.CompareFrames)
	if err != nil {
		slog.Error("Falló la comparación de algoritmos", "error", err)
		os.Exit(1)
	}
	printComparison(results)
}

func printStatistics(stats memoriaModel.Statistics) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "Algoritmo\t%s\n", stats.Algorithm)
	fmt.Fprintf(writer, "Accesos\t%d\n", stats.TotalAccesses)
	fmt.Fprintf(writer, "Page faults\t%d (%.2f%%)\n", stats.PageFaults, stats.PageFaultRate)
	fmt.Fprintf(writer, "TLB hits\t%d\n", stats.TlbHits)
	fmt.Fprintf(writer, "TLB misses\t%d\n", stats.TlbMisses)
	fmt.Fprintf(writer, "TLB hit rate\t%.2f%%\n", stats.TlbHitRate)
	writer.Flush()
}

func printComparison(results []memoriaModel.ComparisonResult) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "Algoritmo\tFrames\tPage faults\tFault rate\tTLB hit rate")
	for _, result := range results {
		fmt.Fprintf(writer, "%s\t%d\t%d\t%.2f%%\t%.2f%%\n",
			result.Algorithm, result.NumFrames, result.PageFaults, result.PageFaultRate, result.TlbHitRate)
	}
	writer.Flush()
}
