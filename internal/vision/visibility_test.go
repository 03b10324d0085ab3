package vision

import (
	"math"
	"testing"

	"github.com/CryptoBros-oai/DUUM/internal/world"
)

// Helper: 10x10 пола в кольце стен (итого 12x12)
func setupRingGrid() *world.SectorGrid {
	g := world.NewSectorGrid(12, 12, "void")
	g.RegisterSectorType("wall", world.SectorType{Walkable: false})
	g.RegisterSectorType("floor", world.SectorType{Walkable: true})
	g.FillRect(0, 0, 11, 11, "wall")
	g.FillRect(1, 1, 10, 10, "floor")
	return g
}

func TestVisibility_FullRoomSweep(t *testing.T) {
	g := setupRingGrid()
	e := New(g, Config{RayCount: 720, Step: 0.15, RenderStep: 0.02, LOSStep: 0.5, ViewDistance: 20})

	// Наблюдатель в центре комнаты, полный круг обзора
	newly := e.Update(5, 5, 0, 0)

	// Видно все: 100 клеток пола и 44 клетки кольца стен
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			if !e.IsVisible(x, y) {
				t.Errorf("cell (%d,%d) not visible after full sweep", x, y)
			}
		}
	}
	if e.VisibleCount() != 144 {
		t.Errorf("VisibleCount = %d, want 144", e.VisibleCount())
	}

	// Открыта ровно проходимая часть видимого
	if e.DiscoveredCount() != 100 {
		t.Errorf("DiscoveredCount = %d, want 100 floor cells", e.DiscoveredCount())
	}
	if len(newly) != 100 {
		t.Errorf("newly discovered = %d, want 100", len(newly))
	}
	for _, c := range newly {
		if !g.SectorAtCell(c.X, c.Y).Walkable {
			t.Errorf("non-walkable cell (%d,%d) reported as discovered", c.X, c.Y)
		}
	}

	// Повторный Update с той же точки ничего нового не открывает
	if again := e.Update(5, 5, 0, 0); len(again) != 0 {
		t.Errorf("second update discovered %d cells, want 0", len(again))
	}
}

func TestVisibility_PartialConfigDefaults(t *testing.T) {
	g := setupRingGrid()
	// Заполнены только RayCount и дальность: шаги маршей обязаны
	// добраться дефолтами, иначе dist += 0 крутился бы вечно.
	e := New(g, Config{RayCount: 360, ViewDistance: 10})

	newly := e.Update(5.5, 5.5, 0, 0)
	if len(newly) != 100 {
		t.Errorf("newly discovered = %d, want 100", len(newly))
	}

	hit := e.CastRay(5.5, 5.5, 0, 10)
	if !hit.Hit || hit.CellX != 11 {
		t.Errorf("CastRay = %+v, want hit at column 11", hit)
	}

	if !e.HasLineOfSight(5.5, 5.5, 8.5, 5.5) {
		t.Error("open line of sight not seen")
	}
}

func TestVisibility_ConeSymmetric(t *testing.T) {
	// Открытое поле без стен: веер не обрезается геометрией.
	g := world.NewSectorGrid(31, 31, "floor")
	g.RegisterSectorType("floor", world.SectorType{Walkable: true})

	// Мало лучей, чтобы перекос веера был заметен на клетках.
	e := New(g, Config{RayCount: 6, Step: 0.1, RenderStep: 0.02, LOSStep: 0.5, ViewDistance: 10})
	e.Update(15.5, 15.5, 0, math.Pi/2)

	// Конус смотрит на восток: видимость зеркальна относительно оси Y=15.5.
	for y := 0; y < 31; y++ {
		for x := 0; x < 31; x++ {
			if e.IsVisible(x, y) != e.IsVisible(x, 30-y) {
				t.Errorf("cone asymmetric: (%d,%d) visible=%v, mirror (%d,%d) visible=%v",
					x, y, e.IsVisible(x, y), x, 30-y, e.IsVisible(x, 30-y))
			}
		}
	}
}

func TestVisibility_DiscoveryMonotonic(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())

	// Серия апдейтов из разных точек: discovered только растет
	prev := 0
	points := [][2]float64{{2, 2}, {9, 9}, {2, 9}, {5, 5}, {2, 2}}
	for _, p := range points {
		e.Update(p[0], p[1], 0, 0)
		if e.DiscoveredCount() < prev {
			t.Fatalf("discovered shrank: %d -> %d", prev, e.DiscoveredCount())
		}
		prev = e.DiscoveredCount()
	}

	// Единственный путь вниз - явный сброс
	e.ResetDiscovery()
	if e.DiscoveredCount() != 0 {
		t.Errorf("DiscoveredCount after reset = %d, want 0", e.DiscoveredCount())
	}
}

func TestVisibility_WallsBlockSight(t *testing.T) {
	g := setupRingGrid()
	// Сплошная перегородка по столбцу x=6
	g.FillRect(6, 0, 6, 11, "wall")
	e := New(g, DefaultConfig())

	e.Update(3, 5, 0, 0)

	// Перегородка видна, пространство за ней - нет
	if !e.IsVisible(6, 5) {
		t.Error("blocking wall itself should be visible")
	}
	if e.IsVisible(8, 5) {
		t.Error("cell behind the wall should not be visible")
	}
	if e.IsDiscovered(8, 5) {
		t.Error("cell behind the wall should not be discovered")
	}
}

func TestVisibility_DiscoveryPercent(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())

	if e.DiscoveryPercent() != 0 {
		t.Errorf("initial percent = %v, want 0", e.DiscoveryPercent())
	}

	e.Update(5, 5, 0, 0)
	if pct := e.DiscoveryPercent(); pct != 100 {
		t.Errorf("percent after full sweep = %v, want 100", pct)
	}
}

func TestVisibility_SnapshotRoundTrip(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())
	e.Update(5, 5, 0, 0)

	cells := e.DiscoveredCells()
	if len(cells) != e.DiscoveredCount() {
		t.Fatalf("snapshot has %d cells, state has %d", len(cells), e.DiscoveredCount())
	}

	// Восстановление в свежий движок: туман войны совпадает,
	// видимое множество пустое до первого Update
	e2 := New(g, DefaultConfig())
	e2.RestoreDiscovered(cells)
	if e2.DiscoveredCount() != e.DiscoveredCount() {
		t.Errorf("restored %d cells, want %d", e2.DiscoveredCount(), e.DiscoveredCount())
	}
	if e2.VisibleCount() != 0 {
		t.Errorf("visible set should not be persisted, got %d cells", e2.VisibleCount())
	}

	// Мусорные координаты молча пропускаются
	e2.RestoreDiscovered([]Cell{{X: -5, Y: 100}})
	if e2.IsDiscovered(-5, 100) {
		t.Error("out-of-bounds cell must not be discoverable")
	}
}
