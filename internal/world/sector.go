package world

// Дефолты для незаполненных полей при регистрации типа сектора.
// Регистрируемое определение "накрывает" эти значения.
const (
	DefaultCeilHeight = 2.0
	DefaultFriction   = 0.85
	DefaultLightLevel = 1.0
)

// SectorType описывает семантику клетки: геометрия, материал, физика.
// В самой сетке хранится только ключ, запись одна на весь тип —
// это позволяет держать большие уровни компактно.
type SectorType struct {
	Key         string  `json:"key"`
	FloorHeight float64 `json:"floorHeight"`
	CeilHeight  float64 `json:"ceilHeight"`
	Walkable    bool    `json:"walkable"`

	FloorColor string `json:"floorColor,omitempty"`
	WallColor  string `json:"wallColor,omitempty"`
	CeilColor  string `json:"ceilColor,omitempty"`

	Friction      float64 `json:"friction"`
	DamagePerTick float64 `json:"damagePerTick,omitempty"`
	LightLevel    float64 `json:"lightLevel"`

	// Props - произвольные данные уровня (звук шагов, текстуры и т.п.)
	Props map[string]any `json:"props,omitempty"`
}

// normalizeSector применяет дефолты к незаполненным полям.
// Нулевой Friction/CeilHeight/LightLevel трактуем как "не задано".
func normalizeSector(key string, def SectorType) SectorType {
	def.Key = key
	if def.CeilHeight == 0 {
		def.CeilHeight = DefaultCeilHeight
	}
	if def.Friction == 0 {
		def.Friction = DefaultFriction
	}
	if def.LightLevel == 0 {
		def.LightLevel = DefaultLightLevel
	}
	return def
}

// defaultSectorType - тип для выхода за границы и незарегистрированных ключей.
// Всегда непроходим, чтобы лучи и коллизии гарантированно останавливались.
func defaultSectorType(key string) SectorType {
	return SectorType{
		Key:        key,
		CeilHeight: DefaultCeilHeight,
		Walkable:   false,
		WallColor:  "#222222",
		Friction:   DefaultFriction,
		LightLevel: DefaultLightLevel,
	}
}
