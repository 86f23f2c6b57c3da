package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

var _ fulfillment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks contra los repositorios en memoria simulando una
// transacción: un mutex global serializa las "transacciones" (equivalente al
// bloqueo de fila en PostgreSQL) y un snapshot previo permite revertir todo si
// fn devuelve error.
type TxRunner struct {
	mu       sync.Mutex
	Items    *ItemRepo
	Movs     *MovementRepo
	Lines    *PurchaseLineRepo
	Requests *RequestRepo
}

// NewTxRunner construye el runner con repositorios en memoria nuevos.
func NewTxRunner() *TxRunner {
	return &TxRunner{
		Items:    NewItemRepository(),
		Movs:     NewMovementRepository(),
		Lines:    NewPurchaseLineRepository(),
		Requests: NewRequestRepository(),
	}
}

// Run serializa la transacción, toma snapshot y revierte en caso de error.
func (r *TxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	lineRepo repository.PurchaseLineRepository,
	requestRepo repository.RequestRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	itemsSnap := r.Items.snapshot()
	movsSnap := r.Movs.snapshot()
	linesSnap := r.Lines.snapshot()
	requestsSnap := r.Requests.snapshot()

	if err := fn(r.Items, r.Movs, r.Lines, r.Requests); err != nil {
		// Rollback: restaura el estado previo completo
		r.Items.restore(itemsSnap)
		r.Movs.restore(movsSnap)
		r.Lines.restore(linesSnap)
		r.Requests.restore(requestsSnap)
		return err
	}
	return nil
}
