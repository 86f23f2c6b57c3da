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

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo solicitudes de stock en memoria (para tests).
type RequestRepo struct {
	mu       sync.RWMutex
	requests map[string]entity.StockRequest
}

// NewRequestRepository construye el repositorio en memoria.
func NewRequestRepository() *RequestRepo {
	return &RequestRepo{requests: make(map[string]entity.StockRequest)}
}

func (r *RequestRepo) Create(_ context.Context, req *entity.StockRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = *req
	return nil
}

func (r *RequestRepo) GetByID(_ context.Context, id string) (*entity.StockRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if req, ok := r.requests[id]; ok {
		copia := req
		return &copia, nil
	}
	return nil, nil
}

func (r *RequestRepo) List(_ context.Context, department string, includeArchived bool, limit, offset int) ([]*entity.StockRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []entity.StockRequest
	for _, req := range r.requests {
		if department != "" && req.Department != department {
			continue
		}
		if !includeArchived && req.Archived {
			continue
		}
		matched = append(matched, req)
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
	list := make([]*entity.StockRequest, len(matched))
	for i := range matched {
		copia := matched[i]
		list[i] = &copia
	}
	return list, nil
}

// Resolve replica el update condicional WHERE status = 'pending'.
func (r *RequestRepo) Resolve(_ context.Context, id, status, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	if req.Status != entity.RequestStatusPending {
		return domain.ErrAlreadyResolved
	}
	req.Status = status
	req.Notes = notes
	req.UpdatedAt = time.Now()
	r.requests[id] = req
	return nil
}

func (r *RequestRepo) SetArchived(_ context.Context, id string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Archived = archived
	req.UpdatedAt = time.Now()
	r.requests[id] = req
	return nil
}

func (r *RequestRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *RequestRepo) snapshot() map[string]entity.StockRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(map[string]entity.StockRequest, len(r.requests))
	for k, v := range r.requests {
		snap[k] = v
	}
	return snap
}

func (r *RequestRepo) restore(snap map[string]entity.StockRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = snap
}
