package level

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CryptoBros-oai/DUUM/internal/world"
)

// Definition - декларативное описание уровня: каталог типов секторов,
// легенда символов, ASCII-строки карты и регионы. Грузится один раз
// до начала игры.
type Definition struct {
	Name string `yaml:"name"`

	// Default - ключ типа для незаполненных клеток и выхода за границы.
	Default string `yaml:"default"`

	Sectors map[string]SectorDef `yaml:"sectors"`

	// Legend: символ строки карты -> ключ типа сектора.
	Legend map[string]string `yaml:"legend"`

	// Rows - карта сверху вниз, строка 0 = y 0.
	Rows []string `yaml:"rows"`

	Regions []RegionDef `yaml:"regions"`

	Spawn SpawnDef `yaml:"spawn"`
}

// SectorDef - YAML-представление типа сектора. Незаполненные числовые
// поля добирают дефолты при регистрации в сетке.
type SectorDef struct {
	FloorHeight   float64        `yaml:"floor_height"`
	CeilHeight    float64        `yaml:"ceil_height"`
	Walkable      bool           `yaml:"walkable"`
	FloorColor    string         `yaml:"floor_color"`
	WallColor     string         `yaml:"wall_color"`
	CeilColor     string         `yaml:"ceil_color"`
	Friction      float64        `yaml:"friction"`
	DamagePerTick float64        `yaml:"damage_per_tick"`
	LightLevel    float64        `yaml:"light_level"`
	Props         map[string]any `yaml:"props"`
}

type RegionDef struct {
	Name  string         `yaml:"name"`
	X1    float64        `yaml:"x1"`
	Y1    float64        `yaml:"y1"`
	X2    float64        `yaml:"x2"`
	Y2    float64        `yaml:"y2"`
	Props map[string]any `yaml:"props"`
}

type SpawnDef struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// Load читает определение уровня из YAML-файла.
func Load(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse разбирает и валидирует определение уровня.
func Parse(raw []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("level yaml: %w", err)
	}
	if def.Default == "" {
		return nil, fmt.Errorf("level %q: default sector key is required", def.Name)
	}
	if len(def.Rows) == 0 {
		return nil, fmt.Errorf("level %q: empty map", def.Name)
	}
	width := len([]rune(def.Rows[0]))
	for i, row := range def.Rows {
		if len([]rune(row)) != width {
			return nil, fmt.Errorf("level %q: row %d width %d, want %d", def.Name, i, len([]rune(row)), width)
		}
	}
	return &def, nil
}

// Build собирает SectorGrid по определению. Символы вне легенды
// остаются дефолтным типом: данные уровня могут дописываться
// инкрементально, это не ошибка.
func (def *Definition) Build() *world.SectorGrid {
	width := len([]rune(def.Rows[0]))
	grid := world.NewSectorGrid(width, len(def.Rows), def.Default)

	for key, sd := range def.Sectors {
		grid.RegisterSectorType(key, world.SectorType{
			FloorHeight:   sd.FloorHeight,
			CeilHeight:    sd.CeilHeight,
			Walkable:      sd.Walkable,
			FloorColor:    sd.FloorColor,
			WallColor:     sd.WallColor,
			CeilColor:     sd.CeilColor,
			Friction:      sd.Friction,
			DamagePerTick: sd.DamagePerTick,
			LightLevel:    sd.LightLevel,
			Props:         sd.Props,
		})
	}

	for y, row := range def.Rows {
		for x, ch := range []rune(row) {
			key, ok := def.Legend[string(ch)]
			if !ok {
				continue
			}
			grid.SetSector(x, y, key)
		}
	}

	for _, rd := range def.Regions {
		grid.DefineRegion(rd.Name, world.Rect{X1: rd.X1, Y1: rd.Y1, X2: rd.X2, Y2: rd.Y2}, rd.Props)
	}

	return grid
}
