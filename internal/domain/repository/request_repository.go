package repository

import (
	"context"

	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
)

// RequestRepository define el puerto de persistencia de solicitudes de stock.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.StockRequest) error
	GetByID(ctx context.Context, id string) (*entity.StockRequest, error)
	// List filtra por departamento (vacío = todos) y por archivado.
	List(ctx context.Context, department string, includeArchived bool, limit, offset int) ([]*entity.StockRequest, error)
	// Resolve marca la solicitud como approved/rejected de forma condicional:
	// solo si sigue pending. Devuelve domain.ErrAlreadyResolved si otra sesión
	// la resolvió primero, domain.ErrNotFound si no existe.
	Resolve(ctx context.Context, id, status, notes string) error
	SetArchived(ctx context.Context, id string, archived bool) error
	Delete(ctx context.Context, id string) error
}
