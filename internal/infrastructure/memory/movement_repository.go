package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria (para tests). Append-only.
type MovementRepo struct {
	mu      sync.RWMutex
	entries []entity.Movement
}

// NewMovementRepository construye el libro en memoria.
func NewMovementRepository() *MovementRepo {
	return &MovementRepo{}
}

func (r *MovementRepo) Append(_ context.Context, movement *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.entries = append(r.entries, *movement)
	return nil
}

func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []entity.Movement
	for _, m := range r.entries {
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, m)
	}
	// Más reciente primero
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	list := make([]*entity.Movement, len(matched))
	for i := range matched {
		copia := matched[i]
		list[i] = &copia
	}
	return list, nil
}

func (r *MovementRepo) SumByItem(_ context.Context, itemID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for _, m := range r.entries {
		if m.ItemID == itemID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

// Len cantidad total de entradas (solo para asserts de tests).
func (r *MovementRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *MovementRepo) snapshot() []entity.Movement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make([]entity.Movement, len(r.entries))
	copy(snap, r.entries)
	return snap
}

func (r *MovementRepo) restore(snap []entity.Movement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = snap
}
