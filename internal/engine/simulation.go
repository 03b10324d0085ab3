package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/CryptoBros-oai/DUUM/internal/entity"
	"github.com/CryptoBros-oai/DUUM/internal/physics"
	"github.com/CryptoBros-oai/DUUM/internal/storage"
	"github.com/CryptoBros-oai/DUUM/internal/vision"
	"github.com/CryptoBros-oai/DUUM/internal/world"
	"github.com/CryptoBros-oai/DUUM/pkg/logger"
)

// TickEvents - все события одного шага симуляции. Возвращаются явно,
// вместо вызова подписчиков: порядок обработки определяет вызывающий.
type TickEvents struct {
	Tick uint64
	// NewlyDiscovered - клетки, впервые попавшие в туман войны.
	NewlyDiscovered []vision.Cell
	// SectorChanges - мутации сетки, накопленные с прошлого тика.
	SectorChanges []world.SectorChange
	// ViewerMove - итог разрешения движения наблюдателя.
	ViewerMove physics.MoveResult
}

// Simulation связывает сетку, видимость, решатель движения и индекс
// сущностей в один тик. Вся мутация - синхронно внутри Step, одной
// горутиной: блокировки не нужны.
type Simulation struct {
	Grid     *world.SectorGrid
	Vision   *vision.Engine
	Solver   *physics.Solver
	Entities *entity.Index

	// Viewer - сущность, от которой считается видимость.
	Viewer *entity.Entity

	Tick uint64
	cfg  Config

	// pendingChanges - мутации сетки, сделанные через SetSector/FillRect
	// с прошлого тика. Step выдает их в событиях и очищает.
	pendingChanges []world.SectorChange
}

// NewSimulation собирает симуляцию вокруг готовой сетки уровня.
func NewSimulation(grid *world.SectorGrid, cfg Config) *Simulation {
	return &Simulation{
		Grid:     grid,
		Vision:   vision.New(grid, cfg.Vision),
		Solver:   physics.NewSolver(grid, cfg.Physics),
		Entities: entity.NewIndex(cfg.CellSize),
		cfg:      cfg,
	}
}

// SetViewer регистрирует наблюдателя (и добавляет его в индекс,
// если он там еще не лежит). Наблюдателя двигает решатель, а не
// интеграция индекса, поэтому он помечается кинематическим.
func (s *Simulation) SetViewer(e *entity.Entity) {
	e.Kinematic = true
	s.Viewer = e
	if s.Entities.Get(e.ID) == nil {
		s.Entities.Add(e)
	}
}

// SetSector мутирует сетку, запоминая изменение для событий
// следующего тика. Мутации сетки в рантайме идут через симуляцию,
// чтобы подписчики видели их в общем потоке событий.
func (s *Simulation) SetSector(gx, gy int, key string) bool {
	change, changed := s.Grid.SetSector(gx, gy, key)
	if changed {
		s.pendingChanges = append(s.pendingChanges, change)
	}
	return changed
}

// FillRect мутирует прямоугольник сетки, см. SetSector.
func (s *Simulation) FillRect(x1, y1, x2, y2 int, key string) int {
	changes := s.Grid.FillRect(x1, y1, x2, y2, key)
	s.pendingChanges = append(s.pendingChanges, changes...)
	return len(changes)
}

// Step прогоняет один фиксированный тик:
// ввод уже прочитан -> решатель двигает наблюдателя по сетке ->
// индекс продвигает и перекладывает сущности -> видимость пересчитывается
// от новой точки обзора. Рендер и AI читают результат после возврата.
func (s *Simulation) Step(dt float64) TickEvents {
	s.Tick++
	ev := TickEvents{Tick: s.Tick, SectorChanges: s.pendingChanges}
	s.pendingChanges = nil

	if s.Viewer != nil {
		v := s.Viewer
		if v.VX != 0 || v.VY != 0 {
			res := s.Solver.Move(v, v.VX*dt, v.VY*dt)
			v.X, v.Y = res.X, res.Y
			s.Entities.Rebucket(v)
			ev.ViewerMove = res
		}
		// Трение сектора под ногами гасит скорость наблюдателя.
		sec := s.Grid.SectorAt(v.X, v.Y)
		v.VX, v.VY = s.Solver.ApplyFriction(v.VX, v.VY, sec.Friction, dt)
	}

	s.Entities.Update(dt)

	if s.Viewer != nil {
		ev.NewlyDiscovered = s.Vision.Update(s.Viewer.X, s.Viewer.Y, s.Viewer.Angle, s.cfg.FOV)
	}

	return ev
}

// Snapshot снимает полное состояние для сохранения.
func (s *Simulation) Snapshot() storage.SaveGame {
	return storage.SaveGame{
		Tick:       s.Tick,
		Grid:       s.Grid.ToSnapshot(),
		Discovered: s.Vision.DiscoveredCells(),
		Entities:   s.Entities.ToRecords(),
	}
}

// RestoreSimulation поднимает симуляцию из снапшота. factories - см.
// entity.Restore; nil дает generic-сущности.
func RestoreSimulation(game storage.SaveGame, cfg Config, factories map[string]entity.Factory) (*Simulation, error) {
	grid, err := world.FromSnapshot(game.Grid)
	if err != nil {
		return nil, err
	}
	s := NewSimulation(grid, cfg)
	s.Tick = game.Tick
	s.Vision.RestoreDiscovered(game.Discovered)
	s.Entities.Restore(game.Entities, factories)

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"tick":      game.Tick,
		"entities":  len(game.Entities),
	}).Info("Simulation restored from save")
	return s, nil
}
