package vision

import "math"

// HasLineOfSight проверяет прямую видимость между двумя произвольными
// точками. Марш независимый и более грубый, чем у рендерных лучей:
// им пользуется логика восприятия и наведения, а не отрисовка.
// Текущее видимое множество здесь не участвует.
func (e *Engine) HasLineOfSight(x1, y1, x2, y2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)

	// Совпадающие точки видят друг друга тривиально.
	if dist == 0 {
		return true
	}

	startX, startY := int(math.Floor(x1)), int(math.Floor(y1))
	endX, endY := int(math.Floor(x2)), int(math.Floor(y2))

	ux, uy := dx/dist, dy/dist
	for t := e.cfg.LOSStep; t < dist; t += e.cfg.LOSStep {
		gx := int(math.Floor(x1 + ux*t))
		gy := int(math.Floor(y1 + uy*t))
		// Клетки самих точек не блокируют: наблюдатель и цель могут
		// стоять вплотную к стене или внутри её клетки.
		if gx == startX && gy == startY {
			continue
		}
		if gx == endX && gy == endY {
			continue
		}
		if !e.grid.SectorAtCell(gx, gy).Walkable {
			return false
		}
	}
	return true
}
