package physics

import (
	"math"

	"github.com/CryptoBros-oai/DUUM/internal/entity"
)

// Vec2 - пара мировых координат или компонент смещения.
type Vec2 struct {
	X, Y float64
}

// OverlapPush для двух пересекающихся кругов возвращает пару векторов
// расталкивания вдоль оси центр-центр, по половине глубины проникновения
// каждому. Это мягкая депенетрация, не импульсный отклик: применяется
// симметрично к обеим сущностям.
// ok == false - круги не пересекаются, вектора нулевые.
func OverlapPush(a, b *entity.Entity) (pushA, pushB Vec2, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := a.Radius + b.Radius

	if dist >= minDist {
		return Vec2{}, Vec2{}, false
	}

	// Совпадающие центры: ось не определена, толкаем по X.
	if dist == 0 {
		half := minDist / 2
		return Vec2{X: -half}, Vec2{X: half}, true
	}

	half := (minDist - dist) / 2
	ux, uy := dx/dist, dy/dist
	return Vec2{X: -ux * half, Y: -uy * half}, Vec2{X: ux * half, Y: uy * half}, true
}

// ApplyFriction гасит скорость экспоненциально: coeff^(dt*FrictionRate).
// Затухание за фиксированный отрезок реального времени одинаково
// при любом размере шага симуляции.
func (s *Solver) ApplyFriction(vx, vy, coeff, dt float64) (float64, float64) {
	if coeff <= 0 {
		return 0, 0
	}
	k := math.Pow(coeff, dt*s.cfg.FrictionRate)
	return vx * k, vy * k
}
