package models

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm identifica la política de reemplazo de páginas.
type Algorithm string

const (
	FIFO    Algorithm = "FIFO"
	LRU     Algorithm = "LRU"
	LFU     Algorithm = "LFU"
	Optimal Algorithm = "OPTIMAL"
	Clock   Algorithm = "CLOCK"
)

// Algorithms en el orden en que se reportan las comparaciones.
var Algorithms = []Algorithm{FIFO, LRU, LFU, Optimal, Clock}

func (a Algorithm) IsValid() bool {
	switch a {
	case FIFO, LRU, LFU, Optimal, Clock:
		return true
	}
	return false
}

// ParseAlgorithm acepta el nombre sin importar mayúsculas ("Optimal", "clock", ...).
func ParseAlgorithm(name string) (Algorithm, error) {
	algorithm := Algorithm(strings.ToUpper(strings.TrimSpace(name)))
	if !algorithm.IsValid() {
		return "", fmt.Errorf("%w: algoritmo desconocido %q", ErrConfig, name)
	}
	return algorithm, nil
}

// NoPage y NoFrame indican ausencia de víctima o de frame asignado.
const (
	NoPage  = -1
	NoFrame = -1
)

// DEFINICION DE ERRORES
var ErrConfig = errors.New("configuración inválida")
var ErrInvalidPage = errors.New("página inválida")
var ErrPolicyState = errors.New("estado inconsistente de la política de reemplazo")
