package vision

import (
	"math"
	"testing"
)

func TestCastRay_HitEastWall(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())

	// Луч строго на восток из центра комнаты
	hit := e.CastRay(5.5, 5.5, 0, 20)
	if !hit.Hit {
		t.Fatal("ray must hit the east wall")
	}
	if hit.CellX != 11 || hit.CellY != 5 {
		t.Errorf("hit cell (%d,%d), want (11,5)", hit.CellX, hit.CellY)
	}
	// Стена начинается на x=11: дистанция 5.5 с точностью до шага
	if math.Abs(hit.Distance-5.5) > 0.05 {
		t.Errorf("hit distance %v, want ~5.5", hit.Distance)
	}
	// Точка попадания у вертикальной границы - грань восток/запад
	if hit.Face != FaceEW {
		t.Errorf("face = %v, want FaceEW", hit.Face)
	}
}

func TestCastRay_HitSouthWall(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())

	hit := e.CastRay(5.5, 5.5, math.Pi/2, 20)
	if !hit.Hit || hit.CellX != 5 || hit.CellY != 11 {
		t.Fatalf("hit = %+v, want cell (5,11)", hit)
	}
	if hit.Face != FaceNS {
		t.Errorf("face = %v, want FaceNS", hit.Face)
	}
}

func TestCastRay_MissAtMaxDistance(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())

	// Дальности не хватает до стены
	hit := e.CastRay(5.5, 5.5, 0, 2)
	if hit.Hit {
		t.Fatalf("unexpected hit: %+v", hit)
	}
	if hit.Distance != 2 {
		t.Errorf("miss distance = %v, want maxDist", hit.Distance)
	}
}

func TestCastRay_VisibilityFlags(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())

	// До Update стена не видна и не открыта
	hit := e.CastRay(5.5, 5.5, 0, 20)
	if hit.Visible || hit.Discovered {
		t.Errorf("flags before update: %+v", hit)
	}

	e.Update(5.5, 5.5, 0, 0)
	hit = e.CastRay(5.5, 5.5, 0, 20)
	if !hit.Visible {
		t.Error("wall should be flagged visible after update")
	}
}

func TestCastRays_FishEyeCorrection(t *testing.T) {
	g := setupRingGrid()
	e := New(g, DefaultConfig())

	fov := math.Pi / 3
	hits := e.CastRays(5.5, 5.5, 0, fov, 81)

	for i, h := range hits {
		if !h.Hit {
			t.Fatalf("column %d missed", i)
		}
		// Поправка не увеличивает дистанцию
		if h.Corrected > h.Distance+1e-9 {
			t.Errorf("column %d: corrected %v > raw %v", i, h.Corrected, h.Distance)
		}
	}

	// Центральная колонка смотрит почти вдоль взгляда: поправка ~нулевая
	center := hits[40]
	if math.Abs(center.Corrected-center.Distance) > 0.01 {
		t.Errorf("center column corrected %v vs raw %v", center.Corrected, center.Distance)
	}

	// Крайняя колонка скорректирована заметно сильнее
	edge := hits[0]
	if edge.Distance-edge.Corrected < 0.1 {
		t.Errorf("edge column barely corrected: raw %v, corrected %v", edge.Distance, edge.Corrected)
	}
}

func TestLineOfSight(t *testing.T) {
	g := setupRingGrid()
	// Перегородка по столбцу x=5
	g.FillRect(5, 0, 5, 11, "wall")
	e := New(g, DefaultConfig())

	// Нулевая длина тривиально проходит, даже внутри стены
	if !e.HasLineOfSight(5.5, 5.5, 5.5, 5.5) {
		t.Error("zero-length LOS must succeed")
	}

	// По одну сторону перегородки - видно
	if !e.HasLineOfSight(2.5, 2.5, 3.5, 8.5) {
		t.Error("open path should have LOS")
	}

	// Сквозь перегородку - нет
	if e.HasLineOfSight(2.5, 5.5, 8.5, 5.5) {
		t.Error("LOS through a solid wall")
	}

	// Клетки конечных точек не блокируют: цель вплотную к стене видна
	if !e.HasLineOfSight(2.5, 5.5, 5.5, 5.5) {
		t.Error("endpoint cell itself must not block LOS")
	}
}
