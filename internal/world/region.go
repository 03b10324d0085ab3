package world

// Rect - прямоугольник в мировых координатах (границы включительно).
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Contains проверяет попадание точки в прямоугольник.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Region - именованная область уровня (зона спавна, триггер, локация).
// Регионы могут пересекаться.
type Region struct {
	Name   string         `json:"name"`
	Bounds Rect           `json:"bounds"`
	Props  map[string]any `json:"props,omitempty"`
}

// DefineRegion добавляет регион. Нормализует перевернутые границы.
func (g *SectorGrid) DefineRegion(name string, bounds Rect, props map[string]any) Region {
	if bounds.X1 > bounds.X2 {
		bounds.X1, bounds.X2 = bounds.X2, bounds.X1
	}
	if bounds.Y1 > bounds.Y2 {
		bounds.Y1, bounds.Y2 = bounds.Y2, bounds.Y1
	}
	reg := Region{Name: name, Bounds: bounds, Props: props}
	g.regions = append(g.regions, reg)
	return reg
}

// RegionsAt возвращает все регионы, накрывающие точку.
// Линейный скан: регионов на уровне единицы, индекс не нужен.
func (g *SectorGrid) RegionsAt(x, y float64) []Region {
	var out []Region
	for _, reg := range g.regions {
		if reg.Bounds.Contains(x, y) {
			out = append(out, reg)
		}
	}
	return out
}

// Regions возвращает копию таблицы регионов.
func (g *SectorGrid) Regions() []Region {
	out := make([]Region, len(g.regions))
	copy(out, g.regions)
	return out
}
