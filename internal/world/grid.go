package world

import "math"

// SectorChange - событие изменения клетки. Возвращается из мутаторов
// явно, вместо вызова подписчиков: порядок обработки виден вызывающему.
type SectorChange struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	OldKey string `json:"oldKey"`
	NewKey string `json:"newKey"`
}

// SectorGrid - авторитетная карта уровня: сетка ключей типов секторов
// плюс реестр самих типов и именованные прямоугольные регионы.
type SectorGrid struct {
	Width  int
	Height int

	// cells - row-major ключи. Индекс: y*Width + x.
	cells []string

	types      map[string]SectorType
	defaultKey string
	regions    []Region
}

// NewSectorGrid создает сетку, целиком заполненную дефолтным типом.
func NewSectorGrid(width, height int, defaultKey string) *SectorGrid {
	g := &SectorGrid{
		Width:      width,
		Height:     height,
		cells:      make([]string, width*height),
		types:      make(map[string]SectorType),
		defaultKey: defaultKey,
	}
	g.types[defaultKey] = defaultSectorType(defaultKey)
	for i := range g.cells {
		g.cells[i] = defaultKey
	}
	return g
}

func (g *SectorGrid) Index(x, y int) int {
	return y*g.Width + x
}

// RegisterSectorType сохраняет тип под уникальным ключом,
// накрывая им дефолтные значения. Повторная регистрация перезаписывает.
func (g *SectorGrid) RegisterSectorType(key string, def SectorType) SectorType {
	st := normalizeSector(key, def)
	g.types[key] = st
	return st
}

// SectorTypeByKey возвращает запись реестра (дефолт, если ключ неизвестен).
func (g *SectorGrid) SectorTypeByKey(key string) SectorType {
	if st, ok := g.types[key]; ok {
		return st
	}
	return g.types[g.defaultKey]
}

// DefaultKey возвращает ключ дефолтного типа.
func (g *SectorGrid) DefaultKey() string {
	return g.defaultKey
}

// InBounds проверяет, что клетка лежит внутри сетки.
func (g *SectorGrid) InBounds(gx, gy int) bool {
	return gx >= 0 && gx < g.Width && gy >= 0 && gy < g.Height
}

// SectorAt возвращает тип сектора в мировой точке. Никогда не падает:
// выход за границы и незарегистрированный ключ деградируют в дефолтный тип.
func (g *SectorGrid) SectorAt(worldX, worldY float64) SectorType {
	return g.SectorAtCell(int(math.Floor(worldX)), int(math.Floor(worldY)))
}

// SectorAtCell - то же, но по целочисленным координатам клетки.
func (g *SectorGrid) SectorAtCell(gx, gy int) SectorType {
	if !g.InBounds(gx, gy) {
		return g.types[g.defaultKey]
	}
	return g.SectorTypeByKey(g.cells[g.Index(gx, gy)])
}

// KeyAtCell возвращает сырой ключ клетки (для снапшотов и отладки).
func (g *SectorGrid) KeyAtCell(gx, gy int) string {
	if !g.InBounds(gx, gy) {
		return g.defaultKey
	}
	return g.cells[g.Index(gx, gy)]
}

// SetSector записывает ключ в клетку. Возвращает событие изменения
// и флаг "значение реально поменялось". Вне границ - no-op.
func (g *SectorGrid) SetSector(gx, gy int, key string) (SectorChange, bool) {
	if !g.InBounds(gx, gy) {
		return SectorChange{}, false
	}
	idx := g.Index(gx, gy)
	old := g.cells[idx]
	if old == key {
		return SectorChange{}, false
	}
	g.cells[idx] = key
	return SectorChange{X: gx, Y: gy, OldKey: old, NewKey: key}, true
}

// FillRect заполняет прямоугольник (включительно), обрезая по границам.
// Возвращает события по каждой реально измененной клетке.
func (g *SectorGrid) FillRect(x1, y1, x2, y2 int, key string) []SectorChange {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	x1 = clampInt(x1, 0, g.Width-1)
	x2 = clampInt(x2, 0, g.Width-1)
	y1 = clampInt(y1, 0, g.Height-1)
	y2 = clampInt(y2, 0, g.Height-1)

	var changes []SectorChange
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if ch, ok := g.SetSector(x, y, key); ok {
				changes = append(changes, ch)
			}
		}
	}
	return changes
}

// IsWalkable - тонкая обертка над SectorAt для горячих путей движения.
func (g *SectorGrid) IsWalkable(worldX, worldY float64) bool {
	return g.SectorAt(worldX, worldY).Walkable
}

func (g *SectorGrid) FloorHeight(worldX, worldY float64) float64 {
	return g.SectorAt(worldX, worldY).FloorHeight
}

func (g *SectorGrid) CeilingHeight(worldX, worldY float64) float64 {
	return g.SectorAt(worldX, worldY).CeilHeight
}

// WalkableCount возвращает число проходимых клеток (для статистики разведки).
func (g *SectorGrid) WalkableCount() int {
	n := 0
	for _, key := range g.cells {
		if g.SectorTypeByKey(key).Walkable {
			n++
		}
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
