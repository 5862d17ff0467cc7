package models

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	IpMemory          string   `json:"ip_memory"`
	PortMemory        int      `json:"port_memory"`
	LogLevel          string   `json:"log_level"`
	TracePath         string   `json:"trace_path"`
	WriteEvery        int      `json:"write_every"`
	CompareAlgorithms []string `json:"compare_algorithms"`
	CompareFrames     []int    `json:"compare_frames"`
}

var CpuConfig *Config

// Validate lo invoca utils/config al cargar el archivo.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.IpMemory) == "" {
		return fmt.Errorf("%w: falta ip_memory", ErrInvalidConfig)
	}
	if c.PortMemory <= 0 {
		return fmt.Errorf("%w: port_memory inválido (%d)", ErrInvalidConfig, c.PortMemory)
	}
	if c.TracePath == "" {
		return fmt.Errorf("%w: falta trace_path", ErrInvalidConfig)
	}
	if c.WriteEvery < 0 {
		return fmt.Errorf("%w: write_every no puede ser negativo (%d)", ErrInvalidConfig, c.WriteEvery)
	}
	return nil
}

// MemoryConfig es la parte de la configuración de Memoria que necesita la CPU.
type MemoryConfig struct {
	PageSize    int    `json:"page_size"`
	NumPages    int    `json:"num_pages"`
	NumFrames   int    `json:"num_frames"`
	Replacement string `json:"replacement"`
}

var MemConfig *MemoryConfig

// TraceResult resume lo observado por la CPU al reproducir una traza.
type TraceResult struct {
	Accesses   int
	PageFaults int
	TlbHits    int
	Writes     int
}

// DEFINICION DE ERRORES
var ErrInvalidConfig = errors.New("invalid config")
var ErrInvalidTrace = errors.New("invalid trace")
var ErrInvalidAddress = errors.New("invalid address")
