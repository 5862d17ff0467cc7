package services

import (
	"fmt"
	"log/slog"

	"github.com/aakashsen704/virtual-memory-simulator/memoria/models"
	"github.com/aakashsen704/virtual-memory-simulator/utils/list"
)

// ReplacementPolicy decide qué página desalojar cuando no quedan frames libres.
// Lleva su propio registro de páginas residentes, independiente de la tabla de páginas.
//
// OPTIMAL necesita la cadena de referencias completa de antemano, así que solo sirve
// para acotar el mejor resultado posible sobre una traza conocida.
type ReplacementPolicy struct {
	algorithm models.Algorithm
	numPages  int
	numFrames int

	frames   []int // páginas residentes; en CLOCK cada posición es un slot fijo del reloj
	resident map[int]bool

	queue       *list.ArrayList[int] // FIFO: orden de llegada, la más vieja primero
	lastAccess  map[int]int64        // LRU y LFU
	accessCount map[int]int          // LFU

	referenceString []int // OPTIMAL
	cursor          int

	referenceBits map[int]bool // CLOCK
	clockHand     int
}

func NewReplacementPolicy(algorithm models.Algorithm, numPages, numFrames int, referenceString []int) (*ReplacementPolicy, error) {
	if !algorithm.IsValid() {
		return nil, fmt.Errorf("%w: algoritmo desconocido %q", models.ErrConfig, algorithm)
	}
	if numFrames <= 0 || numPages <= 0 {
		return nil, fmt.Errorf("%w: páginas (%d) y frames (%d) deben ser positivos", models.ErrConfig, numPages, numFrames)
	}

	policy := &ReplacementPolicy{
		algorithm: algorithm,
		numPages:  numPages,
		numFrames: numFrames,
		frames:    make([]int, 0, numFrames),
		resident:  make(map[int]bool, numFrames),
	}

	switch algorithm {
	case models.FIFO:
		policy.queue = list.NewArrayList[int]()
	case models.LRU:
		policy.lastAccess = make(map[int]int64, numFrames)
	case models.LFU:
		policy.lastAccess = make(map[int]int64, numFrames)
		policy.accessCount = make(map[int]int, numFrames)
	case models.Optimal:
		if len(referenceString) == 0 {
			return nil, fmt.Errorf("%w: OPTIMAL requiere la cadena de referencias completa", models.ErrConfig)
		}
		policy.referenceString = append([]int(nil), referenceString...)
	case models.Clock:
		policy.referenceBits = make(map[int]bool, numFrames)
	}

	return policy, nil
}

func (p *ReplacementPolicy) Algorithm() models.Algorithm {
	return p.algorithm
}

// IsResident indica si la política tiene registrada la página como cargada.
func (p *ReplacementPolicy) IsResident(page int) bool {
	return p.resident[page]
}

// ResidentPages devuelve las páginas residentes en el orden interno de la política.
func (p *ReplacementPolicy) ResidentPages() []int {
	return append([]int(nil), p.frames...)
}

// AccessPage registra un acceso a la página. Retorna si hubo page fault y, si hubo que
// desalojar, la página víctima (models.NoPage si no la hay). Quien llama es responsable
// de sacar la víctima de la tabla de páginas y de la TLB.
func (p *ReplacementPolicy) AccessPage(page int, time int64, isWrite bool) (bool, int, error) {
	if page < 0 || page >= p.numPages {
		return false, models.NoPage, fmt.Errorf("%w: %d (páginas: %d)", models.ErrInvalidPage, page, p.numPages)
	}

	fault := !p.resident[page]
	victim := models.NoPage

	if fault {
		slot := len(p.frames)
		if len(p.frames) >= p.numFrames {
			var err error
			victim, slot, err = p.selectVictim()
			if err != nil {
				return false, models.NoPage, err
			}
			if err := p.evict(victim, slot); err != nil {
				return false, models.NoPage, err
			}
			slog.Debug(fmt.Sprintf("Reemplazo %s - Víctima: %d - Nueva página: %d", p.algorithm, victim, page))
		}
		p.admit(page, slot)
	}

	p.touch(page, time)
	if p.algorithm == models.Optimal {
		p.cursor++
	}

	return fault, victim, nil
}

// selectVictim elige la página a desalojar y el slot de frames que ocupa.
func (p *ReplacementPolicy) selectVictim() (int, int, error) {
	if len(p.frames) == 0 {
		return models.NoPage, -1, fmt.Errorf("%w: se pidió una víctima sin páginas residentes", models.ErrPolicyState)
	}

	switch p.algorithm {
	case models.FIFO:
		return p.fifoVictim()
	case models.LRU:
		return p.lruVictim()
	case models.LFU:
		return p.lfuVictim()
	case models.Optimal:
		return p.optimalVictim()
	case models.Clock:
		return p.clockVictim()
	}
	return models.NoPage, -1, fmt.Errorf("%w: algoritmo desconocido %q", models.ErrPolicyState, p.algorithm)
}

// fifoVictim: la página que llegó primero.
func (p *ReplacementPolicy) fifoVictim() (int, int, error) {
	victim, err := p.queue.Get(0)
	if err != nil {
		return models.NoPage, -1, fmt.Errorf("%w: cola FIFO vacía", models.ErrPolicyState)
	}
	return victim, p.slotOf(victim), nil
}

// lruVictim: la de menor tiempo de último acceso; ante empate, la primera en frames.
func (p *ReplacementPolicy) lruVictim() (int, int, error) {
	slot := 0
	for i, page := range p.frames {
		if p.lastAccess[page] < p.lastAccess[p.frames[slot]] {
			slot = i
		}
	}
	return p.frames[slot], slot, nil
}

// lfuVictim: la de menor contador; ante empate, la de acceso más viejo.
func (p *ReplacementPolicy) lfuVictim() (int, int, error) {
	slot := 0
	for i, page := range p.frames {
		best := p.frames[slot]
		count, bestCount := p.accessCount[page], p.accessCount[best]
		if count < bestCount || (count == bestCount && p.lastAccess[page] < p.lastAccess[best]) {
			slot = i
		}
	}
	return p.frames[slot], slot, nil
}

// optimalVictim: la que se vuelve a usar más lejos en el futuro. Una página que no
// vuelve a aparecer se elige directamente.
func (p *ReplacementPolicy) optimalVictim() (int, int, error) {
	slot := -1
	farthest := -1
	for i, page := range p.frames {
		next := p.nextUse(page)
		if next == -1 {
			return page, i, nil
		}
		if next > farthest {
			farthest = next
			slot = i
		}
	}
	return p.frames[slot], slot, nil
}

// nextUse busca la próxima aparición de la página después de la referencia actual.
func (p *ReplacementPolicy) nextUse(page int) int {
	for i := p.cursor + 1; i < len(p.referenceString); i++ {
		if p.referenceString[i] == page {
			return i
		}
	}
	return -1
}

// clockVictim recorre los slots desde la aguja: con bit en 1 le da una segunda
// oportunidad (lo pone en 0), con bit en 0 la elige.
func (p *ReplacementPolicy) clockVictim() (int, int, error) {
	for {
		slot := p.clockHand
		page := p.frames[slot]
		p.clockHand = (p.clockHand + 1) % len(p.frames)

		if !p.referenceBits[page] {
			return page, slot, nil
		}
		p.referenceBits[page] = false
	}
}

func (p *ReplacementPolicy) slotOf(page int) int {
	for i, resident := range p.frames {
		if resident == page {
			return i
		}
	}
	return -1
}

func (p *ReplacementPolicy) evict(victim int, slot int) error {
	if slot < 0 || slot >= len(p.frames) || p.frames[slot] != victim {
		return fmt.Errorf("%w: la víctima %d no ocupa el slot %d", models.ErrPolicyState, victim, slot)
	}
	delete(p.resident, victim)

	switch p.algorithm {
	case models.FIFO:
		head, err := p.queue.Dequeue()
		if err != nil || head != victim {
			return fmt.Errorf("%w: la cola FIFO no empieza con la víctima %d", models.ErrPolicyState, victim)
		}
	case models.LRU:
		delete(p.lastAccess, victim)
	case models.LFU:
		delete(p.lastAccess, victim)
		delete(p.accessCount, victim)
	case models.Clock:
		delete(p.referenceBits, victim)
		// el slot se reutiliza en admit para no mover la aguja
		return nil
	}

	p.frames = append(p.frames[:slot], p.frames[slot+1:]...)
	return nil
}

func (p *ReplacementPolicy) admit(page int, slot int) {
	p.resident[page] = true

	if p.algorithm == models.Clock && slot < len(p.frames) {
		p.frames[slot] = page
	} else {
		p.frames = append(p.frames, page)
	}

	switch p.algorithm {
	case models.FIFO:
		p.queue.Add(page)
	case models.LFU:
		p.accessCount[page] = 0
	}
}

// touch actualiza la información de uso en cada acceso, haya habido fault o no.
func (p *ReplacementPolicy) touch(page int, time int64) {
	switch p.algorithm {
	case models.LRU:
		p.lastAccess[page] = time
	case models.LFU:
		p.accessCount[page]++
		p.lastAccess[page] = time
	case models.Clock:
		p.referenceBits[page] = true
	}
}
