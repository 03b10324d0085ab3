package entity

// Record - плоское состояние сущности для сохранений.
type Record struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Z         float64        `json:"z,omitempty"`
	Angle     float64        `json:"angle"`
	Radius    float64        `json:"radius"`
	Height    float64        `json:"height,omitempty"`
	Solid     bool           `json:"solid"`
	Visible   bool           `json:"visible"`
	VX        float64        `json:"vx,omitempty"`
	VY        float64        `json:"vy,omitempty"`
	Kinematic bool           `json:"kinematic,omitempty"`
	Props     map[string]any `json:"props,omitempty"`
}

// Factory восстанавливает сущность конкретного типа из записи.
// Прикладной слой передает по фабрике на тип, чтобы вернуть
// своим сущностям поведение, потерянное при уплощении.
type Factory func(Record) *Entity

// ToRecords уплощает все сущности индекса. Помеченные на удаление
// не сохраняются: для снапшота их уже нет.
func (idx *Index) ToRecords() []Record {
	out := make([]Record, 0, len(idx.byID))
	for _, e := range idx.byID {
		if e.removed {
			continue
		}
		out = append(out, Record{
			ID: e.ID, Type: e.Type,
			X: e.X, Y: e.Y, Z: e.Z,
			Angle: e.Angle, Radius: e.Radius, Height: e.Height,
			Solid: e.Solid, Visible: e.Visible,
			VX: e.VX, VY: e.VY, Kinematic: e.Kinematic,
			Props: e.Props,
		})
	}
	return out
}

// FromRecord собирает generic-сущность без фабрики.
func FromRecord(r Record) *Entity {
	return &Entity{
		ID: r.ID, Type: r.Type,
		X: r.X, Y: r.Y, Z: r.Z,
		Angle: r.Angle, Radius: r.Radius, Height: r.Height,
		Solid: r.Solid, Visible: r.Visible,
		VX: r.VX, VY: r.VY, Kinematic: r.Kinematic,
		Props: r.Props,
	}
}

// Restore регистрирует сущности из записей. factories может быть nil
// или неполной: тип без фабрики восстанавливается generic-записью,
// явно теряя подтиповое поведение.
func (idx *Index) Restore(records []Record, factories map[string]Factory) {
	for _, r := range records {
		var e *Entity
		if f, ok := factories[r.Type]; ok {
			e = f(r)
		}
		if e == nil {
			e = FromRecord(r)
		}
		idx.Add(e)
	}
}
