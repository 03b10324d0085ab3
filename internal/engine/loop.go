package engine

import (
	"context"
	"time"

	"github.com/CryptoBros-oai/DUUM/pkg/logger"
)

// Loop - аккумулятор фиксированного шага. Реальное время кадра
// клампится MaxFrameTime, излишек отбрасывается; симуляция всегда
// шагает ровными порциями 1/TickRate.
type Loop struct {
	Sim *Simulation

	step     float64
	maxFrame float64
	acc      float64
}

func NewLoop(sim *Simulation, cfg Config) *Loop {
	return &Loop{
		Sim:      sim,
		step:     1.0 / float64(cfg.TickRate),
		maxFrame: cfg.MaxFrameTime,
	}
}

// Advance скармливает аккумулятору elapsed секунд реального времени
// и прогоняет накопившиеся тики. Возвращает события всех тиков кадра.
func (l *Loop) Advance(elapsed float64) []TickEvents {
	if elapsed > l.maxFrame {
		elapsed = l.maxFrame
	}
	l.acc += elapsed

	var events []TickEvents
	for l.acc >= l.step {
		l.acc -= l.step
		events = append(events, l.Sim.Step(l.step))
	}
	return events
}

// Run крутит цикл до отмены контекста. onFrame (может быть nil)
// получает события каждого кадра - например, для стрима наблюдателям.
// Вся мутация симуляции происходит в этой горутине.
func (l *Loop) Run(ctx context.Context, onFrame func([]TickEvents)) {
	ticker := time.NewTicker(time.Duration(l.step * float64(time.Second)))
	defer ticker.Stop()

	last := time.Now()
	logger.Log.WithField("tick_rate_hz", int(1.0/l.step+0.5)).Info("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("Simulation loop stopped")
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			events := l.Advance(elapsed)
			if onFrame != nil {
				onFrame(events)
			}
		}
	}
}
