package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Se corre desde la raíz del proyecto, por ejemplo:
// go run ./scripts/update_config ip_memory 192.168.1.100 port_memory 8002
// go run ./scripts/update_config replacement OPTIMAL num_frames 4 reference_string "[1,2,3,4,1,2,5,1,2,3,4,5]"

// Módulos cuyos configs/*.json se actualizan.
var modules = []string{"cpu", "memoria"}

func main() {
	updates, err := parseUpdates(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		fmt.Println("Uso: update_config <clave_1> <valor_1> [<clave_2> <valor_2> ...]")
		fmt.Println("Ejemplo: update_config ip_memory 192.168.0.10 replacement LRU")
		return
	}

	fmt.Println("Valores a actualizar:")
	for k, v := range updates {
		fmt.Printf("  %s: %v\n", k, v)
	}

	for _, module := range modules {
		configDir := filepath.Join(module, "configs")
		fmt.Printf("\nProcesando módulo: %s (en %s)\n", module, configDir)

		if err := updateConfigDir(configDir, updates); err != nil {
			fmt.Printf("Error al buscar archivos en la carpeta %s: %v\n", configDir, err)
		}
	}

	fmt.Println("\nProceso de actualización de configuraciones finalizado.")
}

// parseUpdates arma el mapa clave -> valor a partir de pares de argumentos.
// Los valores que son JSON válido (números, booleanos, listas) conservan su tipo, el resto queda como string.
func parseUpdates(args []string) (map[string]interface{}, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("se esperaban pares clave valor, se recibieron %d argumentos", len(args))
	}

	updates := make(map[string]interface{}, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		var parsedValue interface{}
		if err := json.Unmarshal([]byte(args[i+1]), &parsedValue); err != nil {
			parsedValue = args[i+1]
		}
		updates[args[i]] = parsedValue
	}
	return updates, nil
}

func updateConfigDir(configDir string, updates map[string]interface{}) error {
	return filepath.Walk(configDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fmt.Printf("  Error al acceder %s: %v\n", path, err)
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}

		modified, err := updateConfigFile(path, updates)
		switch {
		case err != nil:
			fmt.Printf("  Error en %s: %v\n", path, err)
		case modified:
			fmt.Printf("  El archivo %s ha sido actualizado correctamente.\n", path)
		default:
			fmt.Printf("  No se encontraron claves a actualizar en %s.\n", path)
		}
		return nil
	})
}

// updateConfigFile solo pisa claves que ya existen en el archivo.
func updateConfigFile(path string, updates map[string]interface{}) (bool, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(fileContent, &data); err != nil {
		return false, fmt.Errorf("JSON inválido: %w", err)
	}

	modified := false
	for key, value := range updates {
		if _, ok := data[key]; ok {
			data[key] = value
			modified = true
		}
	}
	if !modified {
		return false, nil
	}

	newJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, append(newJSON, '\n'), 0644)
}
