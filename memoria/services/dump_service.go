package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
)

// DumpSimulator escribe en dir un snapshot del simulador y retorna la ruta del archivo creado.
func DumpSimulator(sim *Simulator, dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		slog.Error(fmt.Sprintf("Error al crear el directorio %s: %v", dir, err))
		return "", err
	}

	file, dumpFilePath, err := createDumpFile(dir, getDumpName(sim.Config().Algorithm, time.Now()))
	if err != nil {
		slog.Error(fmt.Sprintf("error al crear archivo de dump: %v", err))
		return "", err
	}
	defer file.Close()

	if err := writeDump(file, sim); err != nil {
		slog.Error("Fallo al escribir contenido en el archivo de dump")
		return "", fmt.Errorf("fallo al escribir datos al archivo de dump: %w", err)
	}

	slog.Info(fmt.Sprintf("Memoria: Dump completado en %s", dumpFilePath))
	return dumpFilePath, nil
}

func getDumpName(algorithm models.Algorithm, now time.Time) string {
	timestamp := now.Format("20060102-150405.000")
	return fmt.Sprintf("%s-%s", algorithm, timestamp)
}

// createDumpFile nunca pisa un dump existente: si el nombre ya está tomado agrega -1, -2, ...
func createDumpFile(dir string, name string) (*os.File, string, error) {
	for sequence := 0; ; sequence++ {
		fileName := name + ".dmp"
		if sequence > 0 {
			fileName = fmt.Sprintf("%s-%d.dmp", name, sequence)
		}
		path := filepath.Join(dir, fileName)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
}

func writeDump(w io.Writer, sim *Simulator) error {
	writer := bufio.NewWriter(w)
	config := sim.Config()
	stats := sim.Statistics()

	fmt.Fprintf(writer, "algoritmo: %s\n", config.Algorithm)
	fmt.Fprintf(writer, "paginas: %d frames: %d tam_pagina: %d tlb: %d\n",
		config.NumPages, config.NumFrames, config.PageSize, config.TlbEntries)
	fmt.Fprintf(writer, "accesos: %d page_faults: %d (%.2f%%) tlb_hits: %d tlb_misses: %d (%.2f%%)\n",
		stats.TotalAccesses, stats.PageFaults, stats.PageFaultRate, stats.TlbHits, stats.TlbMisses, stats.TlbHitRate)

	fmt.Fprintln(writer, "\n# pagina frame referenciada modificada ultimo_acceso accesos")
	for _, page := range sim.ResidentPages() {
		entry, err := sim.PageTableEntry(page)
		if err != nil {
			return err
		}
		fmt.Fprintf(writer, "%d %d %t %t %d %d\n",
			page, entry.Frame, entry.Referenced, entry.Modified, entry.LastAccessTime, entry.AccessCount)
	}

	fmt.Fprintln(writer, "\n# tlb (menos reciente primero): pagina frame")
	for _, entry := range sim.TLBEntries() {
		fmt.Fprintf(writer, "%d %d\n", entry.PageNumber, entry.FrameNumber)
	}

	return writer.Flush()
}
