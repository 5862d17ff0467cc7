package services

import (
	"fmt"
	"log/slog"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
	"github.com/aakashsen704/virtual-memory-simulator/utils/list"
)

// TLB guarda los últimos mapeos página -> frame. Las entradas están ordenadas de la menos
// recientemente usada (índice 0) a la más recientemente usada.
type TLB struct {
	entries *list.ArrayList[models.TLBEntry]
	maxSize int
	hits    int
	misses  int
}

func NewTLB(maxSize int) *TLB {
	return &TLB{
		entries: list.NewArrayList[models.TLBEntry](),
		maxSize: maxSize,
	}
}

func (tlb *TLB) search(page int) (models.TLBEntry, int, bool) {
	return tlb.entries.Find(func(entry models.TLBEntry) bool {
		return entry.PageNumber == page
	})
}

// Lookup busca la página. Un hit la lleva a la posición de más reciente; un miss no crea la entrada.
func (tlb *TLB) Lookup(page int) (int, bool) {
	entry, index, found := tlb.search(page)
	if !found {
		tlb.misses++
		return models.NoFrame, false
	}

	tlb.hits++
	_ = tlb.entries.MoveToBack(index)
	return entry.FrameNumber, true
}

// Insert agrega el mapeo. Si la página ya estaba solo se actualiza su recencia;
// si la TLB está llena se reemplaza la entrada menos recientemente usada.
func (tlb *TLB) Insert(page int, frame int) {
	if _, index, found := tlb.search(page); found {
		_ = tlb.entries.MoveToBack(index)
		return
	}

	if tlb.entries.Size() >= tlb.maxSize {
		victim, err := tlb.entries.Dequeue()
		if err == nil {
			slog.Debug(fmt.Sprintf("TLB reemplazo: Reemplazando entrada Página %d por Página %d",
				victim.PageNumber, page))
		}
	}

	tlb.entries.Add(models.TLBEntry{PageNumber: page, FrameNumber: frame})
}

// Invalidate elimina la entrada de la página si existe.
func (tlb *TLB) Invalidate(page int) {
	tlb.entries.RemoveWhere(func(entry models.TLBEntry) bool {
		return entry.PageNumber == page
	})
}

func (tlb *TLB) Hits() int {
	return tlb.hits
}

func (tlb *TLB) Misses() int {
	return tlb.misses
}

// HitRate es el porcentaje de hits; 0 si todavía no hubo búsquedas.
func (tlb *TLB) HitRate() float64 {
	return percentage(tlb.hits, tlb.hits+tlb.misses)
}

// Entries devuelve una copia de las entradas, de la menos a la más recientemente usada.
func (tlb *TLB) Entries() []models.TLBEntry {
	return tlb.entries.GetAll()
}

func (tlb *TLB) Size() int {
	return tlb.entries.Size()
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
