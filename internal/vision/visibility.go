package vision

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/CryptoBros-oai/DUUM/internal/world"
	"github.com/CryptoBros-oai/DUUM/pkg/logger"
)

// Config - параметры лучевого обхода.
type Config struct {
	// RayCount - число лучей на полный Update.
	RayCount int
	// Step - шаг марша игровых лучей (грубее рендерных).
	Step float64
	// RenderStep - шаг марша CastRay/CastRays (точность попадания в стену).
	RenderStep float64
	// LOSStep - шаг проверки прямой видимости.
	LOSStep float64
	// ViewDistance - максимальная дальность обзора.
	ViewDistance float64
}

// DefaultConfig - значения, подобранные под клетку размером 1.0.
func DefaultConfig() Config {
	return Config{
		RayCount:     360,
		Step:         0.2,
		RenderStep:   0.02,
		LOSStep:      0.5,
		ViewDistance: 20,
	}
}

// Cell - координата клетки для снапшотов и событий открытия.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Engine хранит двухуровневое состояние видимости:
// visible - что видно прямо сейчас (полностью перестраивается каждым Update),
// discovered - что было увидено когда-либо (туман войны, только растет).
// Ключи - упакованные индексы y*Width+x, без строковых аллокаций в горячем цикле.
type Engine struct {
	grid *world.SectorGrid
	cfg  Config

	visible    map[int]struct{}
	discovered map[int]struct{}
}

// sanitize добирает дефолт для каждого незаполненного поля отдельно.
// Нулевой шаг зациклил бы марш навсегда, поэтому частично заполненному
// конфигу доверять нельзя.
func sanitize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.RayCount <= 0 {
		cfg.RayCount = def.RayCount
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.RenderStep <= 0 {
		cfg.RenderStep = def.RenderStep
	}
	if cfg.LOSStep <= 0 {
		cfg.LOSStep = def.LOSStep
	}
	if cfg.ViewDistance <= 0 {
		cfg.ViewDistance = def.ViewDistance
	}
	return cfg
}

func New(grid *world.SectorGrid, cfg Config) *Engine {
	cfg = sanitize(cfg)
	return &Engine{
		grid:       grid,
		cfg:        cfg,
		visible:    make(map[int]struct{}),
		discovered: make(map[int]struct{}),
	}
}

// Update пересчитывает видимое множество веером лучей из точки обзора.
// fov <= 0 трактуется как полный круг. Каждый луч идет фиксированным шагом,
// собирая пройденные клетки, и останавливается на первой непроходимой
// (включая её саму) либо на дальности обзора.
// Возвращает список клеток, впервые попавших в туман войны за этот вызов.
func (e *Engine) Update(viewerX, viewerY, angle, fov float64) []Cell {
	for k := range e.visible {
		delete(e.visible, k)
	}

	if fov <= 0 {
		fov = 2 * math.Pi
	}

	// Собственная клетка видна всегда.
	e.markVisible(int(math.Floor(viewerX)), int(math.Floor(viewerY)))

	// Лучи по центрам равных дуг: веер симметричен относительно angle
	// при частичном fov, а на полном круге нет дубля крайнего луча.
	half := fov / 2
	for i := 0; i < e.cfg.RayCount; i++ {
		rayAngle := angle - half + fov*(float64(i)+0.5)/float64(e.cfg.RayCount)
		e.sweepRay(viewerX, viewerY, rayAngle)
	}

	// Открытие: проходимые клетки из видимого множества, которых еще
	// не было в discovered. Непроходимые (стены) видимы, но не "открываются".
	var newly []Cell
	for key := range e.visible {
		if _, seen := e.discovered[key]; seen {
			continue
		}
		gx, gy := key%e.grid.Width, key/e.grid.Width
		if !e.grid.SectorAtCell(gx, gy).Walkable {
			continue
		}
		e.discovered[key] = struct{}{}
		newly = append(newly, Cell{X: gx, Y: gy})
	}

	if len(newly) > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "vision",
			"newly":     len(newly),
			"visible":   len(e.visible),
		}).Debug("Visibility updated")
	}

	return newly
}

// sweepRay - игровой (грубый) марш одного луча.
func (e *Engine) sweepRay(x, y, angle float64) {
	sin, cos := math.Sincos(angle)
	for dist := 0.0; dist <= e.cfg.ViewDistance; dist += e.cfg.Step {
		gx := int(math.Floor(x + cos*dist))
		gy := int(math.Floor(y + sin*dist))
		e.markVisible(gx, gy)
		if !e.grid.SectorAtCell(gx, gy).Walkable {
			return // Стена видна, но дальше не смотрим
		}
	}
}

func (e *Engine) markVisible(gx, gy int) {
	if !e.grid.InBounds(gx, gy) {
		return
	}
	e.visible[e.grid.Index(gx, gy)] = struct{}{}
}

// IsVisible сообщает, видна ли клетка в текущем кадре.
func (e *Engine) IsVisible(gx, gy int) bool {
	if !e.grid.InBounds(gx, gy) {
		return false
	}
	_, ok := e.visible[e.grid.Index(gx, gy)]
	return ok
}

// IsDiscovered сообщает, была ли клетка когда-либо открыта.
func (e *Engine) IsDiscovered(gx, gy int) bool {
	if !e.grid.InBounds(gx, gy) {
		return false
	}
	_, ok := e.discovered[e.grid.Index(gx, gy)]
	return ok
}

// VisibleCount возвращает размер текущего видимого множества.
func (e *Engine) VisibleCount() int {
	return len(e.visible)
}

// DiscoveredCount возвращает число открытых клеток.
func (e *Engine) DiscoveredCount() int {
	return len(e.discovered)
}

// DiscoveryPercent - доля открытых проходимых клеток от всех проходимых.
func (e *Engine) DiscoveryPercent() float64 {
	total := e.grid.WalkableCount()
	if total == 0 {
		return 0
	}
	n := 0
	for key := range e.discovered {
		gx, gy := key%e.grid.Width, key/e.grid.Width
		if e.grid.SectorAtCell(gx, gy).Walkable {
			n++
		}
	}
	return float64(n) / float64(total) * 100
}

// ResetDiscovery очищает туман войны. Единственный путь, которым
// discovered может уменьшиться.
func (e *Engine) ResetDiscovery() {
	e.discovered = make(map[int]struct{})
}

// DiscoveredCells выгружает туман войны плоским списком координат.
// Текущее видимое множество не сохраняется: его пересчитает ближайший Update.
func (e *Engine) DiscoveredCells() []Cell {
	out := make([]Cell, 0, len(e.discovered))
	for key := range e.discovered {
		out = append(out, Cell{X: key % e.grid.Width, Y: key / e.grid.Width})
	}
	return out
}

// RestoreDiscovered загружает туман войны из снапшота, добавляя к уже
// открытому. Координаты вне сетки молча пропускаются.
func (e *Engine) RestoreDiscovered(cells []Cell) {
	for _, c := range cells {
		if !e.grid.InBounds(c.X, c.Y) {
			continue
		}
		e.discovered[e.grid.Index(c.X, c.Y)] = struct{}{}
	}
}
