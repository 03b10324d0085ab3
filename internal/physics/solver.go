package physics

import (
	"math"

	"github.com/CryptoBros-oai/DUUM/internal/entity"
	"github.com/CryptoBros-oai/DUUM/internal/world"
)

// Config - параметры решателя движения.
type Config struct {
	// MaxStepHeight - максимальный перепад пола, на который можно "шагнуть".
	MaxStepHeight float64
	// MicroStep - длина микрошага при дроблении заблокированного смещения.
	MicroStep float64
	// TraceStep - шаг марша TracePath.
	TraceStep float64
	// SearchAngleStep - угловой шаг при поиске валидной позиции по кольцам.
	SearchAngleStep float64
	// SearchRingStep - приращение радиуса между кольцами.
	SearchRingStep float64
	// FrictionRate - опорная частота для экспоненциального трения:
	// затухание за секунду не зависит от размера шага симуляции.
	FrictionRate float64
}

func DefaultConfig() Config {
	return Config{
		MaxStepHeight:   0.5,
		MicroStep:       0.05,
		TraceStep:       0.1,
		SearchAngleStep: math.Pi / 8,
		SearchRingStep:  0.25,
		FrictionRate:    60,
	}
}

// Solver резолвит перемещения сущностей об проходимость сетки.
// Сущности друг друга не блокируют: мягкое расталкивание делает OverlapPush.
type Solver struct {
	grid *world.SectorGrid
	cfg  Config
}

func NewSolver(grid *world.SectorGrid, cfg Config) *Solver {
	// Каждое поле добирает дефолт отдельно: нулевой шаг или нулевое
	// приращение кольца зациклили бы TracePath/Move/поиск позиции.
	// Ноль трактуется как "не задано", в том числе для MaxStepHeight.
	def := DefaultConfig()
	if cfg.MaxStepHeight <= 0 {
		cfg.MaxStepHeight = def.MaxStepHeight
	}
	if cfg.MicroStep <= 0 {
		cfg.MicroStep = def.MicroStep
	}
	if cfg.TraceStep <= 0 {
		cfg.TraceStep = def.TraceStep
	}
	if cfg.SearchAngleStep <= 0 {
		cfg.SearchAngleStep = def.SearchAngleStep
	}
	if cfg.SearchRingStep <= 0 {
		cfg.SearchRingStep = def.SearchRingStep
	}
	if cfg.FrictionRate <= 0 {
		cfg.FrictionRate = def.FrictionRate
	}
	return &Solver{grid: grid, cfg: cfg}
}

// CanOccupy проверяет, помещается ли круг радиуса radius в точке (x, y).
// Сэмплируются девять точек: центр, четыре угла и четыре середины сторон
// описанного квадрата. Провал любой точки - позиция занята.
// При z >= 0 дополнительно проверяется перепад пола против MaxStepHeight.
func (s *Solver) CanOccupy(x, y, radius, z float64) bool {
	offsets := [9][2]float64{
		{0, 0},
		{-radius, -radius}, {radius, -radius}, {-radius, radius}, {radius, radius},
		{0, -radius}, {0, radius}, {-radius, 0}, {radius, 0},
	}
	for _, off := range offsets {
		sx, sy := x+off[0], y+off[1]
		sec := s.grid.SectorAt(sx, sy)
		if !sec.Walkable {
			return false
		}
		if z >= 0 && sec.FloorHeight-z > s.cfg.MaxStepHeight {
			return false
		}
	}
	return true
}

// MoveResult - итог разрешения перемещения. Позиция не применяется
// к сущности: это делает вызывающий (чистая функция, как и весь решатель).
type MoveResult struct {
	X, Y float64
	// Collided взводится только если не удалось сдвинуться вообще.
	Collided bool
	// Slide - фактическое смещение минус запрошенное.
	SlideX, SlideY float64
}

// Move разрешает смещение сущности в три этапа:
// 1) полное смещение целиком;
// 2) скольжение по осям: сперва только X, затем только Y из полученного;
// 3) жадные микрошаги фиксированной длины (диагональ -> X -> Y),
//    остановка на первом микрошаге, где не прошло ничего.
func (s *Solver) Move(e *entity.Entity, dx, dy float64) MoveResult {
	startX, startY := e.X, e.Y

	finish := func(x, y float64) MoveResult {
		moved := x != startX || y != startY
		return MoveResult{
			X:        x,
			Y:        y,
			Collided: !moved && (dx != 0 || dy != 0),
			SlideX:   (x - startX) - dx,
			SlideY:   (y - startY) - dy,
		}
	}

	if dx == 0 && dy == 0 {
		return MoveResult{X: startX, Y: startY}
	}

	// 1. Полное смещение.
	if s.CanOccupy(startX+dx, startY+dy, e.Radius, e.Z) {
		return finish(startX+dx, startY+dy)
	}

	// 2. Скольжение вдоль стены: оси по отдельности.
	x, y := startX, startY
	if dx != 0 && s.CanOccupy(x+dx, y, e.Radius, e.Z) {
		x += dx
	}
	if dy != 0 && s.CanOccupy(x, y+dy, e.Radius, e.Z) {
		y += dy
	}
	if x != startX || y != startY {
		return finish(x, y)
	}

	// 3. Микрошаги: дробим оставшееся смещение и ползем, пока ползется.
	dist := math.Hypot(dx, dy)
	steps := int(dist / s.cfg.MicroStep)
	if steps > 0 {
		ux := dx / dist * s.cfg.MicroStep
		uy := dy / dist * s.cfg.MicroStep
		for i := 0; i < steps; i++ {
			switch {
			case s.CanOccupy(x+ux, y+uy, e.Radius, e.Z):
				x += ux
				y += uy
			case ux != 0 && s.CanOccupy(x+ux, y, e.Radius, e.Z):
				x += ux
			case uy != 0 && s.CanOccupy(x, y+uy, e.Radius, e.Z):
				y += uy
			default:
				return finish(x, y)
			}
		}
	}
	return finish(x, y)
}
