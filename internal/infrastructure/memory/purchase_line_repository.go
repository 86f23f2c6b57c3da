package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

var _ repository.PurchaseLineRepository = (*PurchaseLineRepo)(nil)

// PurchaseLineRepo líneas de compra en memoria (para tests).
type PurchaseLineRepo struct {
	mu    sync.RWMutex
	lines map[string]entity.PurchaseLine
}

// NewPurchaseLineRepository construye el repositorio en memoria.
func NewPurchaseLineRepository() *PurchaseLineRepo {
	return &PurchaseLineRepo{lines: make(map[string]entity.PurchaseLine)}
}

func (r *PurchaseLineRepo) Create(_ context.Context, line *entity.PurchaseLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[line.ID] = *line
	return nil
}

func (r *PurchaseLineRepo) GetByID(_ context.Context, id string) (*entity.PurchaseLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if line, ok := r.lines[id]; ok {
		copia := line
		return &copia, nil
	}
	return nil, nil
}

func (r *PurchaseLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseLine, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseLineRepo) AddPostedQty(_ context.Context, id string, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[id]
	if !ok {
		return domain.ErrNotFound
	}
	if line.PostedQty+qty > line.OrderedQty {
		return &domain.OverPostingError{
			Ordered:   line.OrderedQty,
			Posted:    line.PostedQty,
			Attempted: qty,
		}
	}
	line.PostedQty += qty
	line.UpdatedAt = time.Now()
	r.lines[id] = line
	return nil
}

func (r *PurchaseLineRepo) List(_ context.Context, orderRef string, limit, offset int) ([]*entity.PurchaseLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []entity.PurchaseLine
	for _, line := range r.lines {
		if orderRef != "" && line.OrderRef != orderRef {
			continue
		}
		matched = append(matched, line)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset > 0 {
		if offset >= len(matched) {
			return nil, nil
		}
		matched = matched[offset:]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	list := make([]*entity.PurchaseLine, len(matched))
	for i := range matched {
		copia := matched[i]
		list[i] = &copia
	}
	return list, nil
}

func (r *PurchaseLineRepo) snapshot() map[string]entity.PurchaseLine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(map[string]entity.PurchaseLine, len(r.lines))
	for k, v := range r.lines {
		snap[k] = v
	}
	return snap
}

func (r *PurchaseLineRepo) restore(snap map[string]entity.PurchaseLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = snap
}
