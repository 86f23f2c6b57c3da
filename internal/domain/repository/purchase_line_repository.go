package repository

import (
	"context"

	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
)

// PurchaseLineRepository define el puerto de líneas de compra entregadas.
type PurchaseLineRepository interface {
	Create(ctx context.Context, line *entity.PurchaseLine) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseLine, error)
	// GetForUpdate bloquea la fila para serializar el control de sobre-recepción.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseLine, error)
	// AddPostedQty acumula la cantidad ya ingresada a inventario.
	AddPostedQty(ctx context.Context, id string, qty int64) error
	List(ctx context.Context, orderRef string, limit, offset int) ([]*entity.PurchaseLine, error)
}
