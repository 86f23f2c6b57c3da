package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// PostDeliveryInput entrada para ingresar a inventario una línea de compra entregada.
// Quantity en cero ingresa todo lo pendiente de la línea.
type PostDeliveryInput struct {
	LineID   string
	Quantity int64
	Actor    string
	Notes    string
}

// PostResult resultado de la recepción: artículo acreditado, entrada del libro
// y línea de compra con el acumulado actualizado.
type PostResult struct {
	Item     *entity.Item
	Movement *entity.Movement
	Line     *entity.PurchaseLine
}

// PostDelivery acredita a inventario una entrega de compra (ruta espejo del
// despacho): crea el artículo si es su primera recepción o suma stock si ya
// existe, registra la entrada stock_in y acumula lo recibido contra la línea.
// Rechaza con OverPostingError todo intento de acreditar más allá de lo ordenado
// (evita el doble abono de la misma entrega).
func (e *Engine) PostDelivery(ctx context.Context, in PostDeliveryInput) (*PostResult, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var res *PostResult
	err := e.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		lineRepo repository.PurchaseLineRepository,
		_ repository.RequestRepository,
	) error {
		// Bloquea la línea para serializar el control de sobre-recepción
		line, err := lineRepo.GetForUpdate(ctx, in.LineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		qty := in.Quantity
		if qty == 0 {
			qty = line.Remaining()
		}
		if qty <= 0 || line.PostedQty+qty > line.OrderedQty {
			return &domain.OverPostingError{
				Ordered:   line.OrderedQty,
				Posted:    line.PostedQty,
				Attempted: qty,
			}
		}

		now := time.Now()
		item, err := itemRepo.GetByNameForUpdate(ctx, line.ItemName)
		if err != nil {
			return err
		}
		if item == nil {
			// Primera recepción de este artículo: alta en inventario
			item = &entity.Item{
				ID:        uuid.New().String(),
				Name:      line.ItemName,
				Category:  line.Category,
				Unit:      line.Unit,
				UnitCost:  line.UnitCost,
				StockQty:  qty,
				MinStock:  0,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := itemRepo.Create(ctx, item); err != nil {
				return err
			}
		} else {
			if item, err = itemRepo.AdjustQty(ctx, item.ID, qty); err != nil {
				return err
			}
			// El costo unitario toma el de la última compra
			if err := itemRepo.UpdateCost(ctx, item.ID, line.UnitCost); err != nil {
				return err
			}
			item.UnitCost = line.UnitCost
		}

		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			ItemName:  item.Name,
			Type:      entity.MovementTypeStockIn,
			Quantity:  qty,
			UserName:  in.Actor,
			Notes:     in.Notes,
			CreatedAt: now,
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		if err := lineRepo.AddPostedQty(ctx, line.ID, qty); err != nil {
			return err
		}
		line.PostedQty += qty
		line.UpdatedAt = now
		res = &PostResult{Item: item, Movement: mov, Line: line}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
