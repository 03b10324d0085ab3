package world

import "fmt"

// Snapshot - структурный слепок сетки. Формат стабильный:
// им пользуется слой сохранений (internal/storage).
type Snapshot struct {
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	DefaultKey string                `json:"defaultKey"`
	Types      map[string]SectorType `json:"types"`
	Cells      []string              `json:"cells"` // row-major
	Regions    []Region              `json:"regions,omitempty"`
}

// ToSnapshot снимает полное состояние сетки.
func (g *SectorGrid) ToSnapshot() Snapshot {
	types := make(map[string]SectorType, len(g.types))
	for k, v := range g.types {
		types[k] = v
	}
	cells := make([]string, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{
		Width:      g.Width,
		Height:     g.Height,
		DefaultKey: g.defaultKey,
		Types:      types,
		Cells:      cells,
		Regions:    g.Regions(),
	}
}

// FromSnapshot восстанавливает сетку. После восстановления SectorAt
// обязан давать те же ответы, что и у исходной сетки, для каждой клетки.
func FromSnapshot(s Snapshot) (*SectorGrid, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", s.Width, s.Height)
	}
	if len(s.Cells) != s.Width*s.Height {
		return nil, fmt.Errorf("cell count mismatch: got %d, want %d", len(s.Cells), s.Width*s.Height)
	}

	g := NewSectorGrid(s.Width, s.Height, s.DefaultKey)
	for k, v := range s.Types {
		// Снапшот несет уже нормализованные записи, пишем как есть.
		g.types[k] = v
	}
	copy(g.cells, s.Cells)
	g.regions = append(g.regions[:0], s.Regions...)
	return g, nil
}
