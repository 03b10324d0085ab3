package engine

import (
	"github.com/CryptoBros-oai/DUUM/internal/entity"
	"github.com/CryptoBros-oai/DUUM/internal/physics"
	"github.com/CryptoBros-oai/DUUM/internal/vision"
)

// Config хранит параметры запуска симуляции.
type Config struct {
	// TickRate - частота фиксированного шага, Гц.
	TickRate int
	// MaxFrameTime - потолок реального времени на кадр, сек.
	// Все сверх потолка отбрасывается, а не досимулируется:
	// защита от лавины догоняющих тиков после паузы.
	MaxFrameTime float64

	// FOV - поле зрения наблюдателя, рад. 0 = полный круг.
	FOV float64

	// CellSize - размер ведра пространственного индекса.
	CellSize float64

	Vision  vision.Config
	Physics physics.Config
}

// NewConfig создает конфиг по умолчанию: 30 тиков/сек, полный круг обзора.
func NewConfig() Config {
	return Config{
		TickRate:     30,
		MaxFrameTime: 0.25,
		FOV:          0,
		CellSize:     entity.DefaultCellSize,
		Vision:       vision.DefaultConfig(),
		Physics:      physics.DefaultConfig(),
	}
}
