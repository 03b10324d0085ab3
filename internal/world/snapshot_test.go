package world

import (
	"encoding/json"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	g := setupRingGrid()
	g.RegisterSectorType("slime", SectorType{Walkable: true, DamagePerTick: 2, Friction: 0.7})
	g.FillRect(4, 4, 6, 6, "slime")
	g.SetSector(5, 5, "ghost_key") // незарегистрированный ключ тоже обязан пережить раундтрип
	g.DefineRegion("pit", Rect{X1: 4, Y1: 4, X2: 6, Y2: 6}, map[string]any{"danger": true})

	// Снапшот гоняем через JSON: именно так он живет в сейвах
	raw, err := json.Marshal(g.ToSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored, err := FromSnapshot(snap)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	// Каждая клетка обязана резолвиться идентично
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			want := g.SectorAtCell(x, y)
			got := restored.SectorAtCell(x, y)
			if got.Key != want.Key || got.Walkable != want.Walkable ||
				got.FloorHeight != want.FloorHeight || got.DamagePerTick != want.DamagePerTick {
				t.Fatalf("cell (%d,%d): got %+v, want %+v", x, y, got, want)
			}
		}
	}

	// Регионы тоже
	if regs := restored.RegionsAt(5, 5); len(regs) != 1 || regs[0].Name != "pit" {
		t.Errorf("regions lost in round trip: %+v", regs)
	}
}

func TestSnapshot_Invalid(t *testing.T) {
	if _, err := FromSnapshot(Snapshot{Width: 0, Height: 5}); err == nil {
		t.Error("zero width should be rejected")
	}
	if _, err := FromSnapshot(Snapshot{Width: 3, Height: 3, Cells: make([]string, 5)}); err == nil {
		t.Error("cell count mismatch should be rejected")
	}
}
