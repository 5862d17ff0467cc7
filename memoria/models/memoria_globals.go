package models

import "fmt"

type Config struct {
	IpMemory        string `json:"ip_memory"`
	PortMemory      int    `json:"port_memory"`
	LogLevel        string `json:"log_level"`
	NumPages        int    `json:"num_pages"`
	NumFrames       int    `json:"num_frames"`
	PageSize        int    `json:"page_size"`
	TlbEntries      int    `json:"tlb_entries"`
	Replacement     string `json:"replacement"`
	ReferenceString []int  `json:"reference_string"` // solo lo usa OPTIMAL
	DumpPath        string `json:"dump_path"`
}

// SimulationConfig son los parámetros con los que se construye un simulador.
type SimulationConfig struct {
	NumPages   int
	NumFrames  int
	PageSize   int
	TlbEntries int
	Algorithm  Algorithm
}

// SimulationConfig arma los parámetros de simulación a partir del archivo de configuración.
func (c *Config) SimulationConfig() (SimulationConfig, error) {
	algorithm, err := ParseAlgorithm(c.Replacement)
	if err != nil {
		return SimulationConfig{}, err
	}

	return SimulationConfig{
		NumPages:   c.NumPages,
		NumFrames:  c.NumFrames,
		PageSize:   c.PageSize,
		TlbEntries: c.TlbEntries,
		Algorithm:  algorithm,
	}, nil
}

// Validate lo invoca utils/config al cargar el archivo.
func (c *Config) Validate() error {
	simConfig, err := c.SimulationConfig()
	if err != nil {
		return err
	}
	if c.PortMemory <= 0 {
		return fmt.Errorf("%w: port_memory inválido (%d)", ErrConfig, c.PortMemory)
	}
	if simConfig.Algorithm == Optimal && len(c.ReferenceString) == 0 {
		return fmt.Errorf("%w: OPTIMAL requiere reference_string", ErrConfig)
	}
	return simConfig.Validate()
}

// Validate verifica que los tamaños sean positivos y que no haya más frames que páginas.
func (c SimulationConfig) Validate() error {
	sizes := []struct {
		name  string
		value int
	}{
		{"num_pages", c.NumPages},
		{"num_frames", c.NumFrames},
		{"page_size", c.PageSize},
		{"tlb_entries", c.TlbEntries},
	}
	for _, size := range sizes {
		if size.value <= 0 {
			return fmt.Errorf("%w: %s debe ser positivo (%d)", ErrConfig, size.name, size.value)
		}
	}
	if c.NumFrames > c.NumPages {
		return fmt.Errorf("%w: num_frames (%d) mayor que num_pages (%d)", ErrConfig, c.NumFrames, c.NumPages)
	}
	if !c.Algorithm.IsValid() {
		return fmt.Errorf("%w: algoritmo desconocido %q", ErrConfig, c.Algorithm)
	}
	return nil
}

var MemoryConfig *Config

type TranslateRequest struct {
	VirtualAddress int  `json:"virtual_address"`
	IsWrite        bool `json:"is_write"`
}

type TranslateResponse struct {
	PhysicalAddress int  `json:"physical_address"`
	PageFault       bool `json:"page_fault"`
	TlbHit          bool `json:"tlb_hit"`
}

// SimulationRequest corre una simulación aislada. Los campos en cero toman el valor del config.
type SimulationRequest struct {
	Algorithm       string `json:"algorithm"`
	NumFrames       int    `json:"num_frames"`
	TlbEntries      int    `json:"tlb_entries"`
	ReferenceString []int  `json:"reference_string"`
	WriteIndexes    []int  `json:"write_indexes"`
}

type CompareRequest struct {
	Algorithms      []string `json:"algorithms"`
	Frames          []int    `json:"frames"`
	ReferenceString []int    `json:"reference_string"`
}

type ResetRequest struct {
	ReferenceString []int `json:"reference_string"`
}

type DumpResponse struct {
	Path string `json:"path"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
