package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	memoryHandler "github.com/aakashsen704/virtual-memory-simulator/memoria/handlers"
	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
	"github.com/aakashsen704/virtual-memory-simulator/utils/config"
	"github.com/aakashsen704/virtual-memory-simulator/utils/log"
	"github.com/aakashsen704/virtual-memory-simulator/utils/web/handlers"
	"github.com/aakashsen704/virtual-memory-simulator/utils/web/server"
)

const (
	//NO borrar el comentario de ConfigPath
	ConfigPath = "memoria/configs/memoria.json" //"./configs/memoria.json"
)

func main() {
	configPath := ConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config.InitConfig(configPath, &models.MemoryConfig)

	logPath, err := log.BuildLogPath("memoria")
	if err != nil {
		slog.Error("No se pudo construir el log path", "err", err)
		return
	}
	log.InitLogger(logPath, models.MemoryConfig.LogLevel)

	slog.Debug(fmt.Sprintf("Port Memory: %d", models.MemoryConfig.PortMemory))

	if err := memoryHandler.InitSimulator(models.MemoryConfig); err != nil {
		slog.Error(fmt.Sprintf("error initializing simulator: %v", err))
		panic(err)
	}

	http.HandleFunc("GET /", handlers.HandshakeHandler("memoria", "Bienvenido al módulo de Memoria"))
	http.HandleFunc("GET /memoria", handlers.HandshakeHandler("memoria", "Memoria en funcionamiento 🚀"))
	http.HandleFunc("GET /config/memoria", memoryHandler.MemoryConfigHandler)
	http.HandleFunc("POST /memoria/traducir", memoryHandler.TranslateHandler)
	http.HandleFunc("GET /memoria/estadisticas", memoryHandler.StatisticsHandler)
	http.HandleFunc("POST /memoria/reiniciar", memoryHandler.ResetHandler)
	http.HandleFunc("POST /memoria/simular", memoryHandler.SimulateHandler)
	http.HandleFunc("POST /memoria/comparar", memoryHandler.CompareHandler)
	http.HandleFunc("POST /memoria/dump", memoryHandler.DumpHandler)
	slog.Info("Memoria lista")

	err = server.InitServer(models.MemoryConfig.PortMemory)
	if err != nil {
		slog.Error(fmt.Sprintf("error initializing server: %v", err))
		panic(err)
	}
}
