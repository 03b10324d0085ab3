package entity

import "testing"

func TestSnapshot_RoundTripGeneric(t *testing.T) {
	idx := NewIndex(2)

	e := New(TypeMonster, 4.5, 2.5)
	e.Angle = 1.5
	e.VX = 0.5
	e.Props = map[string]any{"hp": 40}
	idx.Add(e)

	gone := New(TypeMonster, 1, 1)
	idx.Add(gone)
	gone.MarkRemoved()

	records := idx.ToRecords()
	// Помеченные на удаление в снапшот не попадают
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	// Восстановление без фабрик: generic-записи
	idx2 := NewIndex(2)
	idx2.Restore(records, nil)

	got := idx2.Get(e.ID)
	if got == nil {
		t.Fatal("entity lost in round trip")
	}
	if got.X != 4.5 || got.Y != 2.5 || got.Angle != 1.5 || got.VX != 0.5 {
		t.Errorf("state mismatch: %+v", got)
	}
	if got.Props["hp"] != 40 {
		t.Errorf("props lost: %+v", got.Props)
	}
	// И сразу лежит в правильном ведре
	if found := idx2.GetNear(4.5, 2.5, 0.1); len(found) != 1 {
		t.Errorf("restored entity not indexed: %v", found)
	}
}

func TestSnapshot_FactoryOverride(t *testing.T) {
	idx := NewIndex(2)
	idx.Add(New(TypeMonster, 1, 1))
	idx.Add(New(TypePlayer, 2, 2))

	// Фабрика только для монстров: помечает восстановленных
	factories := map[string]Factory{
		TypeMonster: func(r Record) *Entity {
			e := FromRecord(r)
			e.Props = map[string]any{"rebuilt": true}
			return e
		},
	}

	idx2 := NewIndex(2)
	idx2.Restore(idx.ToRecords(), factories)

	monster := idx2.GetByType(TypeMonster)[0]
	if monster.Props["rebuilt"] != true {
		t.Error("factory was not used for its type")
	}
	// Тип без фабрики восстановлен generic-записью
	player := idx2.GetByType(TypePlayer)[0]
	if player.Props != nil {
		t.Errorf("player should be generic, got props %+v", player.Props)
	}
}
