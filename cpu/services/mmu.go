package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aakashsen704/virtual-memory-simulator/cpu/models"
	memoriaModel "github.com/aakashsen704/virtual-memory-simulator/memoria/models"
	"github.com/aakashsen704/virtual-memory-simulator/utils/web/client"
)

func RequestMemoryConfig() error {
	var config models.MemoryConfig
	if err := doMemoryRequest("GET", "config/memoria", nil, &config); err != nil {
		slog.Error("Error solicitando configuración de Memoria")
		return err
	}
	if config.PageSize <= 0 {
		return fmt.Errorf("%w: page_size inválido (%d)", models.ErrInvalidConfig, config.PageSize)
	}

	models.MemConfig = &config
	slog.Debug("MemConfig cargada", slog.Any("config", models.MemConfig))
	return nil
}

// TranslateAddress pide a Memoria la traducción de una dirección virtual.
func TranslateAddress(virtualAddress int, isWrite bool) (memoriaModel.TranslateResponse, error) {
	var response memoriaModel.TranslateResponse
	if virtualAddress < 0 {
		return response, fmt.Errorf("%w: %d", models.ErrInvalidAddress, virtualAddress)
	}

	request := memoriaModel.TranslateRequest{VirtualAddress: virtualAddress, IsWrite: isWrite}
	if err := doMemoryRequest("POST", "memoria/traducir", request, &response); err != nil {
		return response, err
	}

	if response.TlbHit {
		slog.Debug(fmt.Sprintf("TLB HIT - Dirección: %d", virtualAddress))
	} else {
		slog.Debug(fmt.Sprintf("TLB MISS - Dirección: %d", virtualAddress))
	}
	if response.PageFault {
		slog.Debug(fmt.Sprintf("PAGE FAULT - Dirección: %d", virtualAddress))
	}
	return response, nil
}

// ReplayTrace traduce page * page_size por cada referencia.
// Si writeEvery > 0, cada writeEvery-ésima referencia es una escritura.
func ReplayTrace(refs []int, writeEvery int) (models.TraceResult, error) {
	var result models.TraceResult
	if models.MemConfig == nil {
		if err := RequestMemoryConfig(); err != nil {
			return result, err
		}
	}
	pageSize := models.MemConfig.PageSize

	for i, page := range refs {
		if page < 0 || (models.MemConfig.NumPages > 0 && page >= models.MemConfig.NumPages) {
			return result, fmt.Errorf("%w: referencia %d fuera de rango (%d, páginas: %d)",
				models.ErrInvalidAddress, i, page, models.MemConfig.NumPages)
		}
		isWrite := writeEvery > 0 && (i+1)%writeEvery == 0
		response, err := TranslateAddress(page*pageSize, isWrite)
		if err != nil {
			slog.Error("Error traduciendo referencia", "indice", i, "pagina", page, "error", err)
			return result, err
		}

		result.Accesses++
		if response.PageFault {
			result.PageFaults++
		}
		if response.TlbHit {
			result.TlbHits++
		}
		if isWrite {
			result.Writes++
		}
	}

	slog.Info(fmt.Sprintf("Traza reproducida - Accesos: %d - Page Faults: %d - TLB Hits: %d - Escrituras: %d",
		result.Accesses, result.PageFaults, result.TlbHits, result.Writes))
	return result, nil
}

func RequestStatistics() (memoriaModel.Statistics, error) {
	var stats memoriaModel.Statistics
	err := doMemoryRequest("GET", "memoria/estadisticas", nil, &stats)
	return stats, err
}

// ResetMemory reinicia el simulador de Memoria con la traza que se va a reproducir.
func ResetMemory(refs []int) error {
	return doMemoryRequest("POST", "memoria/reiniciar", memoriaModel.ResetRequest{ReferenceString: refs}, nil)
}

func RequestComparison(refs []int, algorithms []string, frames []int) ([]memoriaModel.ComparisonResult, error) {
	var results []memoriaModel.ComparisonResult
	request := memoriaModel.CompareRequest{
		Algorithms:      algorithms,
		Frames:          frames,
		ReferenceString: refs,
	}
	err := doMemoryRequest("POST", "memoria/comparar", request, &results)
	return results, err
}

// doMemoryRequest envía body como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func doMemoryRequest(method string, query string, body interface{}, out interface{}) error {
	var bodies [][]byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodies = append(bodies, data)
	}

	resp, err := client.DoRequest(models.CpuConfig.PortMemory, models.CpuConfig.IpMemory, method, query, bodies...)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			var memoryError memoriaModel.ErrorResponse
			if json.NewDecoder(resp.Body).Decode(&memoryError) == nil && memoryError.Error != "" {
				return fmt.Errorf("%w: %s", err, memoryError.Error)
			}
		}
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Error("Error decodificando respuesta de Memoria", "query", query, "error", err)
		return err
	}
	return nil
}

