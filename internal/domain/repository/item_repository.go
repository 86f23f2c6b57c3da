package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia del inventario.
// Los métodos ForUpdate bloquean la fila (SELECT FOR UPDATE) y se usan dentro
// de transacciones para serializar el check-then-apply por artículo.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByName busca por nombre con comparación case-insensitive exacta.
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	GetByNameForUpdate(ctx context.Context, name string) (*entity.Item, error)
	// AdjustQty aplica el delta de forma condicional: falla con
	// domain.ErrInsufficientStock si el resultado quedaría negativo.
	AdjustQty(ctx context.Context, id string, delta int64) (*entity.Item, error)
	UpdateCost(ctx context.Context, id string, unitCost decimal.Decimal) error
	List(ctx context.Context, category string, includeInactive bool) ([]*entity.Item, error)
	// ListLowStock devuelve artículos activos con stock en o bajo el punto de reorden.
	ListLowStock(ctx context.Context) ([]*entity.Item, error)
	Deactivate(ctx context.Context, id string) error
}
