package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
)

// MovementFilter filtros para listar el libro de movimientos.
// Type vacío = todos los tipos; From/To nil = sin acotar fecha.
type MovementFilter struct {
	Type     string
	ItemID   string
	From, To *time.Time
	Limit    int
	Offset   int
}

// MovementRepository define el puerto del libro de movimientos.
// Es append-only: no expone update ni delete.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// SumByItem devuelve la suma de deltas con signo de un artículo
	// (debe igualar el stock actual: invariante libro/inventario).
	SumByItem(ctx context.Context, itemID string) (int64, error)
}
