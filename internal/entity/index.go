package entity

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/CryptoBros-oai/DUUM/pkg/logger"
)

// DefaultCellSize - размер ведра пространственного индекса.
// Порядка диаметра типичной сущности: запрос радиуса r задевает O(r^2) ведер.
const DefaultCellSize = 2.0

// bucketKey - координата ведра: (floor(x/cellSize), floor(y/cellSize)).
// Нативный ключ-структура вместо склейки строк: путь горячий.
type bucketKey struct {
	X, Y int
}

// Index - ведерный реестр динамических сущностей. Инвариант:
// сущность лежит ровно в одном ведре, соответствующем её последней
// известной позиции. Ведра принадлежат индексу, снаружи не видны.
type Index struct {
	cellSize float64

	buckets map[bucketKey][]*Entity
	byID    map[string]*Entity
	byType  map[string]map[string]*Entity

	// keys - последнее ведро каждой сущности, для ребакетинга в Update.
	keys map[string]bucketKey
}

func NewIndex(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Index{
		cellSize: cellSize,
		buckets:  make(map[bucketKey][]*Entity),
		byID:     make(map[string]*Entity),
		byType:   make(map[string]map[string]*Entity),
		keys:     make(map[string]bucketKey),
	}
}

func (idx *Index) keyFor(x, y float64) bucketKey {
	return bucketKey{
		X: int(math.Floor(x / idx.cellSize)),
		Y: int(math.Floor(y / idx.cellSize)),
	}
}

// Add регистрирует сущность. Повторное добавление того же ID - замена.
func (idx *Index) Add(e *Entity) {
	if e == nil || e.ID == "" {
		return
	}
	if _, exists := idx.byID[e.ID]; exists {
		idx.Remove(e.ID)
	}

	key := idx.keyFor(e.X, e.Y)
	idx.buckets[key] = append(idx.buckets[key], e)
	idx.byID[e.ID] = e
	idx.keys[e.ID] = key

	byType := idx.byType[e.Type]
	if byType == nil {
		byType = make(map[string]*Entity)
		idx.byType[e.Type] = byType
	}
	byType[e.ID] = e
}

// Remove выбрасывает сущность немедленно. Идемпотентно: незнакомый
// или уже удаленный ID - no-op. Для удаления посреди тика используйте
// MarkRemoved - индекс вычистит сущность в конце Update.
func (idx *Index) Remove(id string) {
	e, ok := idx.byID[id]
	if !ok {
		return
	}
	idx.removeFromBucket(idx.keys[id], id)
	delete(idx.byID, id)
	delete(idx.keys, id)
	if byType := idx.byType[e.Type]; byType != nil {
		delete(byType, id)
		if len(byType) == 0 {
			delete(idx.byType, e.Type)
		}
	}
}

func (idx *Index) removeFromBucket(key bucketKey, id string) {
	bucket := idx.buckets[key]
	for i, e := range bucket {
		if e.ID == id {
			// Swap with last: порядок внутри ведра не важен.
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			idx.buckets[key] = bucket[:last]
			break
		}
	}
	if len(idx.buckets[key]) == 0 {
		delete(idx.buckets, key)
	}
}

// Get возвращает сущность по ID (nil, если нет).
func (idx *Index) Get(id string) *Entity {
	return idx.byID[id]
}

// GetByType возвращает все сущности заданного типа.
func (idx *Index) GetByType(entityType string) []*Entity {
	byType := idx.byType[entityType]
	if len(byType) == 0 {
		return nil
	}
	out := make([]*Entity, 0, len(byType))
	for _, e := range byType {
		out = append(out, e)
	}
	return out
}

// GetAll возвращает все зарегистрированные сущности.
func (idx *Index) GetAll() []*Entity {
	out := make([]*Entity, 0, len(idx.byID))
	for _, e := range idx.byID {
		out = append(out, e)
	}
	return out
}

// Count возвращает число зарегистрированных сущностей.
func (idx *Index) Count() int {
	return len(idx.byID)
}

// GetNear возвращает сущности, чья дистанция до (x, y) строго меньше radius.
// Сканируются только ведра, накрытые описанным квадратом запроса, поэтому
// при равномерном распределении стоимость не растет с общим числом сущностей.
func (idx *Index) GetNear(x, y, radius float64) []*Entity {
	minKey := idx.keyFor(x-radius, y-radius)
	maxKey := idx.keyFor(x+radius, y+radius)
	r2 := radius * radius

	var out []*Entity
	for by := minKey.Y; by <= maxKey.Y; by++ {
		for bx := minKey.X; bx <= maxKey.X; bx++ {
			for _, e := range idx.buckets[bucketKey{X: bx, Y: by}] {
				dx := e.X - x
				dy := e.Y - y
				if dx*dx+dy*dy < r2 {
					out = append(out, e)
				}
			}
		}
	}
	return out
}

// GetInSector возвращает сущности, чья позиция попадает в клетку (gx, gy)
// мировой сетки (клетка единичная, не ведро индекса).
func (idx *Index) GetInSector(gx, gy int) []*Entity {
	// Клетка целиком лежит в круге радиуса sqrt(2)/2 вокруг её центра.
	cx, cy := float64(gx)+0.5, float64(gy)+0.5
	var out []*Entity
	for _, e := range idx.GetNear(cx, cy, 0.75) {
		if int(math.Floor(e.X)) == gx && int(math.Floor(e.Y)) == gy {
			out = append(out, e)
		}
	}
	return out
}

// Update продвигает активные сущности по их скорости, перекладывает
// сменивших ведро и в самом конце вычищает помеченных на удаление.
// Удаление отложенное: итерация внутри тика никогда не ломается.
func (idx *Index) Update(dt float64) {
	var purge []string

	for id, e := range idx.byID {
		if e.removed {
			purge = append(purge, id)
			continue
		}
		if !e.Kinematic && (e.VX != 0 || e.VY != 0) {
			e.X += e.VX * dt
			e.Y += e.VY * dt
		}
		idx.Rebucket(e)
	}

	if len(purge) > 0 {
		for _, id := range purge {
			idx.Remove(id)
		}
		logger.Log.WithFields(logrus.Fields{
			"component": "spatial_index",
			"purged":    len(purge),
		}).Debug("Deferred removals purged")
	}
}

// Rebucket перекладывает сущность в ведро её текущей позиции,
// если ключ сменился. Вызывается после любого внешнего перемещения.
func (idx *Index) Rebucket(e *Entity) {
	old, ok := idx.keys[e.ID]
	if !ok {
		return // не зарегистрирована
	}
	key := idx.keyFor(e.X, e.Y)
	if key == old {
		return
	}
	idx.removeFromBucket(old, e.ID)
	idx.buckets[key] = append(idx.buckets[key], e)
	idx.keys[e.ID] = key
}
