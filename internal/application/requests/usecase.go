package requests

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// UseCase gestiona el ciclo de vida de las solicitudes de stock de los
// departamentos: pending → approved/rejected, con archivado como dimensión de
// visualización aparte.
type UseCase struct {
	txRunner    fulfillment.TxRunner
	engine      *fulfillment.Engine
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
}

// NewUseCase construye el caso de uso de solicitudes.
func NewUseCase(
	txRunner fulfillment.TxRunner,
	engine *fulfillment.Engine,
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, engine: engine, requestRepo: requestRepo, itemRepo: itemRepo}
}

// CreateInput entrada para crear una solicitud.
type CreateInput struct {
	Department  string
	RequestedBy string
	ItemName    string
	Quantity    int64
	Unit        string
	Reason      string
}

// Create registra una solicitud pendiente. La referencia al artículo se
// resuelve por nombre si ya existe en inventario; si no, queda solo el nombre
// (se admite solicitar artículos aún no ingresados).
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.StockRequest, error) {
	name := strings.TrimSpace(in.ItemName)
	if name == "" || in.Department == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var itemID string
	if item, err := uc.itemRepo.GetByName(ctx, name); err == nil && item != nil {
		itemID = item.ID
	}
	now := time.Now()
	req := &entity.StockRequest{
		ID:          uuid.New().String(),
		Department:  in.Department,
		RequestedBy: in.RequestedBy,
		ItemName:    name,
		ItemID:      itemID,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Reason:      in.Reason,
		Status:      entity.RequestStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// List devuelve solicitudes, las más recientes primero.
// department vacío = todos los departamentos.
func (uc *UseCase) List(ctx context.Context, department string, includeArchived bool, limit, offset int) ([]*entity.StockRequest, error) {
	return uc.requestRepo.List(ctx, department, includeArchived, limit, offset)
}

// GetByID devuelve una solicitud o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.StockRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// Approve aprueba una solicitud pendiente y despacha el stock en la misma
// transacción: cambio de estado condicional (ErrAlreadyResolved si otra sesión
// ganó la carrera) + decremento + entrada del libro. Si el despacho falla
// (stock insuficiente, artículo inexistente) todo se revierte y la solicitud
// sigue pendiente.
// fulfilledQty en cero despacha la cantidad solicitada original.
func (uc *UseCase) Approve(ctx context.Context, requestID string, fulfilledQty int64, notes, actor string) (*fulfillment.Result, error) {
	if fulfilledQty < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var res *fulfillment.Result
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.PurchaseLineRepository,
		requestRepo repository.RequestRepository,
	) error {
		req, err := requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		qty := fulfilledQty
		if qty == 0 {
			qty = req.Quantity
		}
		// Update condicional WHERE status = 'pending': la segunda aprobación
		// concurrente falla aquí con ErrAlreadyResolved
		if err := requestRepo.Resolve(ctx, requestID, entity.RequestStatusApproved, notes); err != nil {
			return err
		}
		res, err = uc.engine.FulfillInTx(ctx, itemRepo, movRepo, fulfillment.Input{
			ItemName:   req.ItemName,
			Quantity:   qty,
			Actor:      actor,
			Department: req.Department,
			Notes:      notes,
		}, entity.MovementTypeDistributed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Reject rechaza una solicitud pendiente. Es solo un cambio de estado: no toca
// inventario ni libro de movimientos.
func (uc *UseCase) Reject(ctx context.Context, requestID, reason string) error {
	return uc.requestRepo.Resolve(ctx, requestID, entity.RequestStatusRejected, reason)
}

// ToggleArchive marca o desmarca la solicitud como archivada. No altera la
// resolución: una solicitud archivada no vuelve a pending.
func (uc *UseCase) ToggleArchive(ctx context.Context, requestID string, archived bool) error {
	return uc.requestRepo.SetArchived(ctx, requestID, archived)
}

// Delete elimina la solicitud definitivamente (limpieza). Válido en cualquier
// estado; el libro de movimientos no se ve afectado.
func (uc *UseCase) Delete(ctx context.Context, requestID string) error {
	return uc.requestRepo.Delete(ctx, requestID)
}
