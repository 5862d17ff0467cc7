package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
)

// Validator lo implementan las configuraciones que necesitan chequear sus valores luego de leerse.
type Validator interface {
	Validate() error
}

// InitConfig lee el archivo de configuración y retorna sus valores en la variable config. Si el archivo no
// se puede leer o la configuración es inválida finaliza con panic.
//
// Parámetros:
//   - filePath: ubicacion donde se encuentra el archivo de configuracion
//   - config: puntero a cualquier tipo de estructura (o puntero a puntero)
//
// Ejemplo:
//
//	type TestConfig struct {
//		Name  string `json:"name"`
//		Value int    `json:"value"`
//	}
//	func main() {
//		var testConfig *TestConfig
//		config.InitConfig("./test.json", &testConfig)
//	}
func InitConfig(filePath string, config interface{}) {
	err := LoadConfig(filePath, config)
	if err != nil {
		panic(fmt.Errorf("error al configurar el archivo %s: %w", filePath, err))
	}
}

// LoadConfig es igual a InitConfig pero retorna el error en vez de finalizar.
func LoadConfig(filePath string, config interface{}) error {
	if err := setupConfig(filePath, config); err != nil {
		return err
	}
	return validate(config)
}

func setupConfig(filePath string, config interface{}) error {
	configFile, err := os.Open(filePath)

	if err != nil {
		return err
	}

	defer configFile.Close()

	jsonParser := json.NewDecoder(configFile)

	if err := jsonParser.Decode(config); err != nil {
		return fmt.Errorf("error decodificando %s: %w", filePath, err)
	}

	return nil
}

// validate busca un Validator en config o, si config es un puntero a puntero, en el valor apuntado.
func validate(config interface{}) error {
	if v, ok := config.(Validator); ok {
		return v.Validate()
	}

	value := reflect.ValueOf(config)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return nil
	}
	inner := value.Elem()
	if inner.Kind() == reflect.Pointer && inner.IsNil() {
		return nil
	}
	if v, ok := inner.Interface().(Validator); ok {
		return v.Validate()
	}
	return nil
}
