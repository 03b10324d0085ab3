package entity

import "github.com/CryptoBros-oai/DUUM/pkg/utils"

// Типы сущностей, известные ядру. Прикладной код волен вводить свои.
const (
	TypePlayer     = "PLAYER"
	TypeMonster    = "MONSTER"
	TypeProjectile = "PROJECTILE"
	TypeDecoration = "DECORATION"
)

// Entity - динамический объект мира: игрок, монстр, снаряд, декорация.
// Ядро хранит только пространственное состояние и служебные флаги;
// поведение и характеристики живут в Props у прикладного слоя.
type Entity struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`

	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Height float64 `json:"height,omitempty"`

	// Solid/Visible - флаги для геймплейных систем. Коллизии с сеткой
	// считаются всегда; блокировка "сущность об сущность" в ядре
	// не участвует, см. OverlapPush в physics.
	Solid   bool `json:"solid"`
	Visible bool `json:"visible"`

	VX float64 `json:"vx,omitempty"`
	VY float64 `json:"vy,omitempty"`

	// Kinematic - позицию ведет внешний решатель движения;
	// Update индекса такую сущность по скорости не интегрирует.
	Kinematic bool `json:"kinematic,omitempty"`

	Props map[string]any `json:"props,omitempty"`

	// removed - флаг отложенного удаления. Сущность физически
	// выбрасывается из индекса только в конце тика.
	removed bool
}

// New создает сущность с уникальным ID и флагами по умолчанию.
func New(entityType string, x, y float64) *Entity {
	return &Entity{
		ID:      utils.GenerateID(),
		Type:    entityType,
		X:       x,
		Y:       y,
		Radius:  0.3,
		Height:  1.0,
		Solid:   true,
		Visible: true,
	}
}

// MarkRemoved помечает сущность на удаление в конце тика.
func (e *Entity) MarkRemoved() {
	e.removed = true
}

// Removed сообщает, помечена ли сущность на удаление.
func (e *Entity) Removed() bool {
	return e.removed
}

// DistanceSquaredTo возвращает квадрат расстояния между центрами
// (для сравнений без корня).
func (e *Entity) DistanceSquaredTo(other *Entity) float64 {
	dx := e.X - other.X
	dy := e.Y - other.Y
	return dx*dx + dy*dy
}
