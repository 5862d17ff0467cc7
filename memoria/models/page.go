package models

// PageTableEntry es la entrada de la tabla de páginas de una página virtual.
type PageTableEntry struct {
	Valid          bool  // true si la página está cargada en un frame
	Frame          int   // NoFrame si Valid es false
	Referenced     bool  // Bit de uso
	Modified       bool  // Bit de modificación
	LastAccessTime int64 // Valor del reloj lógico en el último acceso
	AccessCount    int   // No se reinicia al desalojar la página
}

type TLBEntry struct {
	PageNumber  int `json:"page_number"`
	FrameNumber int `json:"frame_number"`
}

type Statistics struct {
	Algorithm     Algorithm `json:"algorithm"`
	TotalAccesses int       `json:"total_accesses"`
	PageFaults    int       `json:"page_faults"`
	PageFaultRate float64   `json:"page_fault_rate"`
	TlbHits       int       `json:"tlb_hits"`
	TlbMisses     int       `json:"tlb_misses"`
	TlbHitRate    float64   `json:"tlb_hit_rate"`
}

// ComparisonResult es el resultado de una corrida para un par (algoritmo, frames).
type ComparisonResult struct {
	Algorithm     Algorithm `json:"algorithm"`
	NumFrames     int       `json:"num_frames"`
	PageFaults    int       `json:"page_faults"`
	PageFaultRate float64   `json:"page_fault_rate"`
	TlbHitRate    float64   `json:"tlb_hit_rate"`
}
