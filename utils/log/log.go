package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const logDir = "./logs"

// InitLogger permite loguear tanto en consola como en archivo según el nivel que se le pase.
//
// Parámetros:
//   - logPath: la ubicación donde se va encontrar el archivo
//   - logLevel: nivel de logueo, este dato viene definido en el archivo de config.
//
// Ejemplo:
//
//	func main() {
//		log.InitLogger("./test.log", "INFO")
//	}
func InitLogger(logPath string, logLevel string) {
	//Creamos el archivo "modulo".log en modo escritura, si ocurre algún error finalizamos con panic.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)

	if err != nil {
		panic(err)
	}

	InitLoggerWithWriter(io.MultiWriter(os.Stdout, logFile), logLevel)
}

// InitLoggerWithWriter configura slog para escribir en writer con el nivel indicado.
func InitLoggerWithWriter(writer io.Writer, logLevel string) {
	level, err := convertStringToLogLevel(logLevel)

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))

	// Escribimos en el log el warning que obtenemos por no setear el logLevel
	if err != nil {
		slog.Warn(err.Error())
	}

	slog.Debug("Se ha configurado correctamente el logger")
}

// BuildLogPath arma la ruta ./logs/<nombre>.log creando el directorio si no existe.
//
// Ejemplo:
//
//	logPath, err := log.BuildLogPath("cpu_%s", idCpu) // ./logs/cpu_1.log
func BuildLogPath(format string, args ...any) (string, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("no se pudo crear el directorio de logs: %w", err)
	}
	name := fmt.Sprintf(format, args...)
	return filepath.Join(logDir, name+".log"), nil
}

// convertStringToLogLevel modifica dinámicamente el nivel de log que deseamos tener en el sistema.
func convertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("No existe %s, se coloca INFO por defecto. ", levelStr)
	}
}
