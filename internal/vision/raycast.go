package vision

import "math"

// Face - классификация поверхности, в которую уперся луч.
// Нужна рендеру для затенения стен по ориентации.
type Face uint8

const (
	FaceNone Face = iota
	// FaceNS - поверхность, обращенная на север/юг (луч пересек границу по Y).
	FaceNS
	// FaceEW - поверхность, обращенная на восток/запад (луч пересек границу по X).
	FaceEW
)

// Hit - результат одного рендерного луча.
type Hit struct {
	Hit bool

	// Точка попадания в мировых координатах.
	X, Y float64
	// Клетка, остановившая луч.
	CellX, CellY int

	Distance float64
	// Corrected - дистанция с поправкой "рыбьего глаза":
	// Distance * cos(отклонение луча от центра взгляда). Заполняется CastRays.
	Corrected float64

	Face Face

	// Флаги видимости клетки на момент запроса - рендер по ним решает,
	// рисовать ли стену в тумане войны.
	Visible    bool
	Discovered bool
}

// CastRay - точный (мелкошаговый) марш одного луча для рендера.
// Возвращает Hit{Hit: false} c дистанцией maxDist, если препятствий нет.
func (e *Engine) CastRay(x, y, angle, maxDist float64) Hit {
	if maxDist <= 0 {
		maxDist = e.cfg.ViewDistance
	}
	sin, cos := math.Sincos(angle)

	for dist := 0.0; dist <= maxDist; dist += e.cfg.RenderStep {
		px := x + cos*dist
		py := y + sin*dist
		gx := int(math.Floor(px))
		gy := int(math.Floor(py))
		if e.grid.SectorAtCell(gx, gy).Walkable {
			continue
		}
		return Hit{
			Hit:        true,
			X:          px,
			Y:          py,
			CellX:      gx,
			CellY:      gy,
			Distance:   dist,
			Corrected:  dist,
			Face:       classifyFace(px, py),
			Visible:    e.IsVisible(gx, gy),
			Discovered: e.IsDiscovered(gx, gy),
		}
	}

	return Hit{
		Hit:       false,
		X:         x + cos*maxDist,
		Y:         y + sin*maxDist,
		Distance:  maxDist,
		Corrected: maxDist,
	}
}

// CastRays выпускает веер рендерных лучей - по одному на колонку экрана.
// Каждому попаданию проставляется скорректированная дистанция, чтобы
// высота колонок считалась без перспективного искажения.
func (e *Engine) CastRays(x, y, angle, fov float64, rayCount int) []Hit {
	if rayCount <= 0 {
		rayCount = e.cfg.RayCount
	}
	hits := make([]Hit, rayCount)
	half := fov / 2
	for i := 0; i < rayCount; i++ {
		// Центры колонок: от -fov/2 до +fov/2.
		offset := -half + fov*(float64(i)+0.5)/float64(rayCount)
		h := e.CastRay(x, y, angle+offset, e.cfg.ViewDistance)
		h.Corrected = h.Distance * math.Cos(offset)
		hits[i] = h
	}
	return hits
}

// classifyFace определяет ориентацию стены по тому, к какой границе
// клетки ближе дробная часть точки попадания: луч входит в клетку
// через ближайшую грань.
func classifyFace(px, py float64) Face {
	fx := px - math.Floor(px)
	fy := py - math.Floor(py)

	edgeX := math.Min(fx, 1-fx) // близость к вертикальной границе
	edgeY := math.Min(fy, 1-fy) // близость к горизонтальной границе

	if edgeX < edgeY {
		return FaceEW
	}
	return FaceNS
}
