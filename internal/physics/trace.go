package physics

import "math"

// TraceResult - итог проверки проходимости отрезка.
type TraceResult struct {
	// Blocked и точка первого заблокированного сэмпла.
	Blocked bool
	X, Y    float64
	// Fraction - доля пути, пройденная до блокировки (1.0 - путь чист).
	Fraction float64
}

// TracePath маршем фиксированного шага проверяет, может ли круг радиуса
// radius пройти по прямой из (x1, y1) в (x2, y2). Это проверка
// достижимости, не живое движение: скольжения здесь нет.
// Отрезок нулевой длины чист, если сама точка занимаема.
func (s *Solver) TracePath(x1, y1, x2, y2, radius float64) TraceResult {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)

	if dist < s.cfg.TraceStep {
		if s.CanOccupy(x2, y2, radius, -1) {
			return TraceResult{X: x2, Y: y2, Fraction: 1}
		}
		return TraceResult{Blocked: true, X: x2, Y: y2, Fraction: 0}
	}

	ux, uy := dx/dist, dy/dist
	for t := 0.0; t <= dist; t += s.cfg.TraceStep {
		px := x1 + ux*t
		py := y1 + uy*t
		if !s.CanOccupy(px, py, radius, -1) {
			return TraceResult{Blocked: true, X: px, Y: py, Fraction: t / dist}
		}
	}
	// Конечная точка могла не попасть в сетку шагов.
	if !s.CanOccupy(x2, y2, radius, -1) {
		return TraceResult{Blocked: true, X: x2, Y: y2, Fraction: 1 - s.cfg.TraceStep/dist}
	}
	return TraceResult{X: x2, Y: y2, Fraction: 1}
}

// FindValidPosition ищет занимаемую точку: сперва сама цель, затем
// расширяющиеся кольца с шагом по углу, пока не исчерпан searchRadius.
// ok == false - единственный в ядре явный сигнал "не найдено".
func (s *Solver) FindValidPosition(targetX, targetY, radius, searchRadius float64) (Vec2, bool) {
	if s.CanOccupy(targetX, targetY, radius, -1) {
		return Vec2{X: targetX, Y: targetY}, true
	}
	for ring := s.cfg.SearchRingStep; ring <= searchRadius; ring += s.cfg.SearchRingStep {
		for a := 0.0; a < 2*math.Pi; a += s.cfg.SearchAngleStep {
			sin, cos := math.Sincos(a)
			px := targetX + cos*ring
			py := targetY + sin*ring
			if s.CanOccupy(px, py, radius, -1) {
				return Vec2{X: px, Y: py}, true
			}
		}
	}
	return Vec2{}, false
}
