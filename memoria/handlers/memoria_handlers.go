package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
	"github.com/aakashsen704/virtual-memory-simulator/memoria/services"
	"github.com/aakashsen704/virtual-memory-simulator/utils/web/server"
)

const DefaultDumpPath = "./dumps/"

// Simulador que atiende /memoria/traducir. Las requests se atienden de a una.
var (
	simulator     *services.Simulator
	simulatorLock sync.Mutex
)

// InitSimulator (re)crea el simulador del servidor a partir de la configuración.
func InitSimulator(config *models.Config) error {
	return initSimulator(config, config.ReferenceString)
}

// initSimulator usa referenceString como lookahead de OPTIMAL en lugar del del config.
func initSimulator(config *models.Config, referenceString []int) error {
	simConfig, err := config.SimulationConfig()
	if err != nil {
		return err
	}
	newSimulator, err := services.NewSimulator(simConfig, referenceString)
	if err != nil {
		return err
	}

	simulatorLock.Lock()
	simulator = newSimulator
	simulatorLock.Unlock()

	slog.Info(fmt.Sprintf("Simulador listo - Algoritmo: %s - Frames: %d - Páginas: %d - TLB: %d",
		simConfig.Algorithm, simConfig.NumFrames, simConfig.NumPages, simConfig.TlbEntries))
	return nil
}

func MemoryConfigHandler(w http.ResponseWriter, r *http.Request) {
	server.SendJsonResponse(w, models.MemoryConfig)
}

func TranslateHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Invalid request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	simulatorLock.Lock()
	physical, fault, tlbHit, err := simulator.Translate(req.VirtualAddress, req.IsWrite)
	simulatorLock.Unlock()

	if err != nil {
		sendError(w, err)
		return
	}

	slog.Debug("Dirección traducida", "virtual", req.VirtualAddress, "fisica", physical, "page_fault", fault, "tlb_hit", tlbHit)
	server.SendJsonResponse(w, models.TranslateResponse{
		PhysicalAddress: physical,
		PageFault:       fault,
		TlbHit:          tlbHit,
	})
}

func StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	simulatorLock.Lock()
	stats := simulator.Statistics()
	simulatorLock.Unlock()

	server.SendJsonResponse(w, stats)
}

// ResetHandler recrea el simulador. El body es opcional: si trae reference_string,
// es la traza que se va a reproducir y OPTIMAL la usa en lugar de la del config.
func ResetHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Invalid request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	referenceString := models.MemoryConfig.ReferenceString
	if len(req.ReferenceString) > 0 {
		referenceString = req.ReferenceString
	}
	if err := initSimulator(models.MemoryConfig, referenceString); err != nil {
		sendError(w, err)
		return
	}
	server.SendJsonResponse(w, "Simulador reiniciado")
}

// SimulateHandler corre una simulación aislada del simulador del servidor.
func SimulateHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Invalid request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	simConfig, err := models.MemoryConfig.SimulationConfig()
	if err != nil {
		sendError(w, err)
		return
	}
	if req.Algorithm != "" {
		if simConfig.Algorithm, err = models.ParseAlgorithm(req.Algorithm); err != nil {
			sendError(w, err)
			return
		}
	}
	if req.NumFrames != 0 {
		simConfig.NumFrames = req.NumFrames
	}
	if req.TlbEntries != 0 {
		simConfig.TlbEntries = req.TlbEntries
	}

	sim, err := services.NewSimulator(simConfig, req.ReferenceString)
	if err != nil {
		sendError(w, err)
		return
	}

	writes := make(map[int]bool, len(req.WriteIndexes))
	for _, index := range req.WriteIndexes {
		writes[index] = true
	}
	if err := sim.RunTraceWithWrites(req.ReferenceString, writes); err != nil {
		sendError(w, err)
		return
	}

	stats := sim.Statistics()
	slog.Info(fmt.Sprintf("Simulación %s - Accesos: %d - Page Faults: %d (%.2f%%)",
		stats.Algorithm, stats.TotalAccesses, stats.PageFaults, stats.PageFaultRate))
	server.SendJsonResponse(w, stats)
}

func CompareHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Invalid request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	base, err := models.MemoryConfig.SimulationConfig()
	if err != nil {
		sendError(w, err)
		return
	}

	algorithms := models.Algorithms
	if len(req.Algorithms) > 0 {
		algorithms = make([]models.Algorithm, 0, len(req.Algorithms))
		for _, name := range req.Algorithms {
			algorithm, err := models.ParseAlgorithm(name)
			if err != nil {
				sendError(w, err)
				return
			}
			algorithms = append(algorithms, algorithm)
		}
	}

	frames := req.Frames
	if len(frames) == 0 {
		frames = []int{base.NumFrames}
	}

	results, err := services.CompareAlgorithms(base, req.ReferenceString, algorithms, frames)
	if err != nil {
		sendError(w, err)
		return
	}
	server.SendJsonResponse(w, results)
}

// DumpHandler escribe un snapshot del simulador del servidor en dump_path.
func DumpHandler(w http.ResponseWriter, r *http.Request) {
	dumpPath := models.MemoryConfig.DumpPath
	if dumpPath == "" {
		dumpPath = DefaultDumpPath
	}

	simulatorLock.Lock()
	path, err := services.DumpSimulator(simulator, dumpPath)
	simulatorLock.Unlock()

	if err != nil {
		sendError(w, err)
		return
	}
	server.SendJsonResponse(w, models.DumpResponse{Path: path})
}

func sendError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, models.ErrConfig) || errors.Is(err, models.ErrInvalidPage) {
		status = http.StatusBadRequest
	}
	slog.Error("Error en memoria", "status", status, "error", err)
	server.SendJsonResponseWithStatus(w, status, models.ErrorResponse{Error: err.Error()})
}
