package services

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aakashsen704/virtual-memory-simulator/cpu/models"
)

// LoadReferenceString lee una traza de números de página.
// Los números van separados por espacios o comas y las líneas que empiezan con # se ignoran.
func LoadReferenceString(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("No se pudo abrir la traza", "path", path, "error", err)
		return nil, err
	}
	defer file.Close()

	refs, err := ParseReferenceString(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("Traza cargada", "path", path, "referencias", len(refs))
	return refs, nil
}

func ParseReferenceString(reader io.Reader) ([]int, error) {
	refs := make([]int, 0)
	scanner := bufio.NewScanner(reader)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		for _, field := range fields {
			page, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: línea %d: %q no es un número de página", models.ErrInvalidTrace, lineNumber, field)
			}
			if page < 0 {
				return nil, fmt.Errorf("%w: línea %d: página negativa %d", models.ErrInvalidTrace, lineNumber, page)
			}
			refs = append(refs, page)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}
