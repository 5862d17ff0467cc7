package services

import (
	"fmt"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
)

// PageTable es la tabla de páginas de un único nivel, indexada por número de página.
type PageTable struct {
	entries []models.PageTableEntry
}

func NewPageTable(numPages int) *PageTable {
	entries := make([]models.PageTableEntry, numPages)
	for i := range entries {
		entries[i].Frame = models.NoFrame
	}
	return &PageTable{entries: entries}
}

func (pt *PageTable) Size() int {
	return len(pt.entries)
}

func (pt *PageTable) checkPage(page int) error {
	if page < 0 || page >= len(pt.entries) {
		return fmt.Errorf("%w: %d (páginas: %d)", models.ErrInvalidPage, page, len(pt.entries))
	}
	return nil
}

// Entry devuelve una copia de la entrada de la página.
func (pt *PageTable) Entry(page int) (models.PageTableEntry, error) {
	if err := pt.checkPage(page); err != nil {
		return models.PageTableEntry{}, err
	}
	return pt.entries[page], nil
}

// IsValid indica si la página está cargada. Una página fuera de rango nunca es válida.
func (pt *PageTable) IsValid(page int) bool {
	if pt.checkPage(page) != nil {
		return false
	}
	return pt.entries[page].Valid
}

// FrameOf devuelve el frame de la página y si está cargada.
func (pt *PageTable) FrameOf(page int) (int, bool, error) {
	if err := pt.checkPage(page); err != nil {
		return models.NoFrame, false, err
	}
	entry := pt.entries[page]
	if !entry.Valid {
		return models.NoFrame, false, nil
	}
	return entry.Frame, true, nil
}

// SetFrame marca la página como válida en el frame dado, pisando cualquier mapeo anterior.
func (pt *PageTable) SetFrame(page int, frame int) error {
	if err := pt.checkPage(page); err != nil {
		return err
	}
	pt.entries[page].Valid = true
	pt.entries[page].Frame = frame
	return nil
}

// Invalidate saca la página de memoria. El resto de la metadata (contador de accesos, bits) se conserva.
func (pt *PageTable) Invalidate(page int) error {
	if err := pt.checkPage(page); err != nil {
		return err
	}
	pt.entries[page].Valid = false
	pt.entries[page].Frame = models.NoFrame
	return nil
}

// RecordAccess actualiza el bit de uso, el tiempo de último acceso, el contador y, si es escritura, el bit de modificado.
func (pt *PageTable) RecordAccess(page int, time int64, isWrite bool) error {
	if err := pt.checkPage(page); err != nil {
		return err
	}
	entry := &pt.entries[page]
	entry.Referenced = true
	entry.LastAccessTime = time
	entry.AccessCount++
	if isWrite {
		entry.Modified = true
	}
	return nil
}
