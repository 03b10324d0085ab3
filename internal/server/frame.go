package server

import (
	"sync"

	"github.com/CryptoBros-oai/DUUM/internal/engine"
	"github.com/CryptoBros-oai/DUUM/internal/entity"
	"github.com/CryptoBros-oai/DUUM/internal/vision"
	"github.com/CryptoBros-oai/DUUM/internal/world"
)

// Frame - кадр состояния для наблюдателей. Только чтение:
// сервер ничего не пишет в симуляцию, это не синхронизация мира.
type Frame struct {
	Tick uint64 `json:"tick"`

	ViewerX     float64 `json:"viewerX"`
	ViewerY     float64 `json:"viewerY"`
	ViewerAngle float64 `json:"viewerAngle"`

	VisibleCount    int     `json:"visibleCount"`
	DiscoveredCount int     `json:"discoveredCount"`
	DiscoveryPct    float64 `json:"discoveryPct"`

	NewlyDiscovered []vision.Cell        `json:"newlyDiscovered,omitempty"`
	SectorChanges   []world.SectorChange `json:"sectorChanges,omitempty"`
	Entities        []entity.Record      `json:"entities"`
}

// BuildFrame собирает кадр из текущего состояния симуляции.
// Вызывается из горутины цикла, пока симуляция не мутирует.
func BuildFrame(sim *engine.Simulation, events []engine.TickEvents) Frame {
	f := Frame{
		Tick:            sim.Tick,
		VisibleCount:    sim.Vision.VisibleCount(),
		DiscoveredCount: sim.Vision.DiscoveredCount(),
		DiscoveryPct:    sim.Vision.DiscoveryPercent(),
		Entities:        sim.Entities.ToRecords(),
	}
	if sim.Viewer != nil {
		f.ViewerX = sim.Viewer.X
		f.ViewerY = sim.Viewer.Y
		f.ViewerAngle = sim.Viewer.Angle
	}
	for _, ev := range events {
		f.NewlyDiscovered = append(f.NewlyDiscovered, ev.NewlyDiscovered...)
		f.SectorChanges = append(f.SectorChanges, ev.SectorChanges...)
	}
	return f
}

// Broadcaster рассылает кадры подписчикам. Медленный подписчик
// теряет кадры, а не тормозит цикл симуляции.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan Frame
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[string]chan Frame)}
}

// Register создает личный канал подписчика.
func (b *Broadcaster) Register(id string) chan Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
	}
	ch := make(chan Frame, 16)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал.
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast отправляет кадр всем. Переполненные каналы пропускаются.
func (b *Broadcaster) Broadcast(f Frame) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- f:
		default:
		}
	}
}

// SubscriberCount возвращает число активных наблюдателей.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
