package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository (para tests).
// Guarda valores, nunca expone punteros internos.
type ItemRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Item // por ID
}

// NewItemRepository construye el repositorio en memoria.
func NewItemRepository() *ItemRepo {
	return &ItemRepo{items: make(map[string]entity.Item)}
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, item.Name) {
			return domain.ErrDuplicateItem
		}
	}
	r.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.items[id]; ok {
		copia := item
		return &copia, nil
	}
	return nil, nil
}

func (r *ItemRepo) GetByName(_ context.Context, name string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByNameLocked(name), nil
}

// GetByNameForUpdate en memoria no bloquea fila: la serialización la da el
// TxRunner de este paquete (mutex global por transacción).
func (r *ItemRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Item, error) {
	return r.GetByName(ctx, name)
}

func (r *ItemRepo) AdjustQty(_ context.Context, id string, delta int64) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if item.StockQty+delta < 0 {
		return nil, &domain.InsufficientStockError{Available: item.StockQty, Requested: -delta}
	}
	item.StockQty += delta
	item.UpdatedAt = time.Now()
	r.items[id] = item
	copia := item
	return &copia, nil
}

func (r *ItemRepo) UpdateCost(_ context.Context, id string, unitCost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.UnitCost = unitCost
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

func (r *ItemRepo) List(_ context.Context, category string, includeInactive bool) ([]*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Item
	for _, item := range r.items {
		if category != "" && item.Category != category {
			continue
		}
		if !includeInactive && !item.Active {
			continue
		}
		copia := item
		list = append(list, &copia)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ItemRepo) ListLowStock(_ context.Context) ([]*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Item
	for _, item := range r.items {
		if item.Active && item.StockQty <= item.MinStock {
			copia := item
			list = append(list, &copia)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ItemRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.Active = false
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

func (r *ItemRepo) findByNameLocked(name string) *entity.Item {
	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			copia := item
			return &copia
		}
	}
	return nil
}

func (r *ItemRepo) snapshot() map[string]entity.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(map[string]entity.Item, len(r.items))
	for k, v := range r.items {
		snap[k] = v
	}
	return snap
}

func (r *ItemRepo) restore(snap map[string]entity.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = snap
}
