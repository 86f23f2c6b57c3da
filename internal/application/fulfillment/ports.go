package fulfillment

import (
	"context"

	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el decremento de stock, la
// entrada del libro y el cambio de estado de la solicitud se confirmen o
// reviertan juntos (cierra la brecha de auditoría decremento-sin-libro).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		lineRepo repository.PurchaseLineRepository,
		requestRepo repository.RequestRepository,
	) error) error
}
