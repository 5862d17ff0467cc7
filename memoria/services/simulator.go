package services

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
	"github.com/aakashsen704/virtual-memory-simulator/utils/list"
)

// Simulator traduce direcciones virtuales a físicas manteniendo consistentes la TLB,
// la tabla de páginas y la política de reemplazo. No es seguro para uso concurrente:
// cada corrida usa su propia instancia.
type Simulator struct {
	config models.SimulationConfig

	pageTable   *PageTable
	tlb         *TLB
	policy      *ReplacementPolicy
	freeFrames  *list.ArrayList[int]
	pageToFrame map[int]int

	accesses int
	faults   int
	clock    int64
}

// NewSimulator crea un simulador. referenceString solo es obligatorio para OPTIMAL.
func NewSimulator(config models.SimulationConfig, referenceString []int) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	policy, err := NewReplacementPolicy(config.Algorithm, config.NumPages, config.NumFrames, referenceString)
	if err != nil {
		return nil, err
	}

	frames := make([]int, config.NumFrames)
	for i := range frames {
		frames[i] = i
	}

	slog.Debug("Simulador creado",
		"algoritmo", config.Algorithm,
		"paginas", config.NumPages,
		"frames", config.NumFrames,
		"tam_pagina", config.PageSize,
		"tlb", config.TlbEntries)

	return &Simulator{
		config:      config,
		pageTable:   NewPageTable(config.NumPages),
		tlb:         NewTLB(config.TlbEntries),
		policy:      policy,
		freeFrames:  list.NewArrayList(frames...),
		pageToFrame: make(map[int]int, config.NumFrames),
	}, nil
}

func (s *Simulator) Config() models.SimulationConfig {
	return s.config
}

// Translate traduce una dirección virtual. Retorna la dirección física, si hubo page fault y si hubo TLB hit.
func (s *Simulator) Translate(virtualAddress int, isWrite bool) (int, bool, bool, error) {
	if virtualAddress < 0 {
		return 0, false, false, fmt.Errorf("%w: dirección virtual negativa %d", models.ErrInvalidPage, virtualAddress)
	}
	page := virtualAddress / s.config.PageSize
	offset := virtualAddress % s.config.PageSize
	if page >= s.config.NumPages {
		return 0, false, false, fmt.Errorf("%w: dirección %d cae en la página %d (páginas: %d)",
			models.ErrInvalidPage, virtualAddress, page, s.config.NumPages)
	}

	s.accesses++
	s.clock++

	frame, tlbHit := s.tlb.Lookup(page)
	if tlbHit {
		slog.Debug(fmt.Sprintf("TLB HIT - Pagina: %d", page))
	} else {
		slog.Debug(fmt.Sprintf("TLB MISS - Pagina: %d", page))
	}

	// La política se entera de todos los accesos para que LRU, LFU, CLOCK y OPTIMAL vean los hits.
	fault, victim, err := s.policy.AccessPage(page, s.clock, isWrite)
	if err != nil {
		return 0, false, false, err
	}

	resident := tlbHit || s.pageTable.IsValid(page)
	if resident == fault {
		return 0, false, false, fmt.Errorf("%w: página %d residente=%v pero la política informó fault=%v",
			models.ErrPolicyState, page, resident, fault)
	}

	if !tlbHit {
		if fault {
			s.faults++
			slog.Debug(fmt.Sprintf("Page Fault - Pagina: %d", page))
			frame, err = s.loadPage(page, victim)
		} else {
			frame, _, err = s.pageTable.FrameOf(page)
		}
		if err != nil {
			return 0, false, false, err
		}
		s.tlb.Insert(page, frame)
	}

	if err := s.pageTable.RecordAccess(page, s.clock, isWrite); err != nil {
		return 0, false, false, err
	}

	return frame*s.config.PageSize + offset, fault, tlbHit, nil
}

// loadPage carga la página en el frame de la víctima o, si no hubo víctima, en el próximo frame libre.
func (s *Simulator) loadPage(page int, victim int) (int, error) {
	var frame int

	if victim != models.NoPage {
		victimFrame, ok := s.pageToFrame[victim]
		if !ok {
			return models.NoFrame, fmt.Errorf("%w: la víctima %d no tiene frame asignado", models.ErrPolicyState, victim)
		}
		if err := s.pageTable.Invalidate(victim); err != nil {
			return models.NoFrame, err
		}
		s.tlb.Invalidate(victim)
		delete(s.pageToFrame, victim)
		frame = victimFrame
		slog.Debug(fmt.Sprintf("Desalojo - Pagina: %d - Frame: %d", victim, frame))
	} else {
		freeFrame, err := s.freeFrames.Dequeue()
		if err != nil {
			return models.NoFrame, fmt.Errorf("%w: no quedan frames libres y la política no eligió víctima", models.ErrPolicyState)
		}
		frame = freeFrame
	}

	if err := s.pageTable.SetFrame(page, frame); err != nil {
		return models.NoFrame, err
	}
	s.pageToFrame[page] = frame
	return frame, nil
}

// RunTrace traduce page*pageSize para cada página de la cadena, todas como lecturas.
func (s *Simulator) RunTrace(referenceString []int) error {
	return s.RunTraceWithWrites(referenceString, nil)
}

// RunTraceWithWrites igual que RunTrace, pero las posiciones en writeIndexes se traducen como escrituras.
func (s *Simulator) RunTraceWithWrites(referenceString []int, writeIndexes map[int]bool) error {
	for i, page := range referenceString {
		if page < 0 {
			return fmt.Errorf("%w: referencia %d negativa (%d)", models.ErrInvalidPage, i, page)
		}
		// se valida antes de multiplicar: una página enorme desborda int y cae en otra página válida
		if page >= s.config.NumPages {
			return fmt.Errorf("%w: referencia %d fuera de rango (%d, páginas: %d)",
				models.ErrInvalidPage, i, page, s.config.NumPages)
		}
		if _, _, _, err := s.Translate(page*s.config.PageSize, writeIndexes[i]); err != nil {
			return fmt.Errorf("referencia %d (página %d): %w", i, page, err)
		}
	}
	return nil
}

// Statistics devuelve una foto de los contadores.
func (s *Simulator) Statistics() models.Statistics {
	return models.Statistics{
		Algorithm:     s.config.Algorithm,
		TotalAccesses: s.accesses,
		PageFaults:    s.faults,
		PageFaultRate: percentage(s.faults, s.accesses),
		TlbHits:       s.tlb.Hits(),
		TlbMisses:     s.tlb.Misses(),
		TlbHitRate:    s.tlb.HitRate(),
	}
}

// ResidentPages devuelve las páginas cargadas, ordenadas.
func (s *Simulator) ResidentPages() []int {
	pages := make([]int, 0, len(s.pageToFrame))
	for page := range s.pageToFrame {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

func (s *Simulator) PageTableEntry(page int) (models.PageTableEntry, error) {
	return s.pageTable.Entry(page)
}

func (s *Simulator) TLBEntries() []models.TLBEntry {
	return s.tlb.Entries()
}

// CheckConsistency verifica que la política, el mapa página->frame, la tabla de páginas y la TLB coincidan.
func (s *Simulator) CheckConsistency() error {
	policyPages := s.policy.ResidentPages()
	if len(policyPages) != len(s.pageToFrame) {
		return fmt.Errorf("%w: la política tiene %d páginas y el mapa %d",
			models.ErrPolicyState, len(policyPages), len(s.pageToFrame))
	}
	if len(s.pageToFrame) > s.config.NumFrames {
		return fmt.Errorf("%w: %d páginas residentes con %d frames",
			models.ErrPolicyState, len(s.pageToFrame), s.config.NumFrames)
	}
	for _, page := range policyPages {
		if _, ok := s.pageToFrame[page]; !ok {
			return fmt.Errorf("%w: la página %d está en la política pero no en el mapa", models.ErrPolicyState, page)
		}
	}

	owners := make(map[int]int, len(s.pageToFrame))
	for page, frame := range s.pageToFrame {
		if owner, taken := owners[frame]; taken {
			return fmt.Errorf("%w: el frame %d lo ocupan las páginas %d y %d", models.ErrPolicyState, frame, owner, page)
		}
		owners[frame] = page

		tableFrame, valid, err := s.pageTable.FrameOf(page)
		if err != nil {
			return err
		}
		if !valid || tableFrame != frame {
			return fmt.Errorf("%w: la tabla de páginas tiene la página %d en el frame %d (esperado %d)",
				models.ErrPolicyState, page, tableFrame, frame)
		}
	}

	for page := 0; page < s.pageTable.Size(); page++ {
		if _, ok := s.pageToFrame[page]; !ok && s.pageTable.IsValid(page) {
			return fmt.Errorf("%w: la página %d es válida pero no está residente", models.ErrPolicyState, page)
		}
	}

	for _, entry := range s.tlb.Entries() {
		frame, ok := s.pageToFrame[entry.PageNumber]
		if !ok || frame != entry.FrameNumber {
			return fmt.Errorf("%w: entrada TLB obsoleta para la página %d (frame %d)",
				models.ErrPolicyState, entry.PageNumber, entry.FrameNumber)
		}
	}
	return nil
}
