package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-stock-api/internal/application/dto"
	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// UseCase consultas de inventario: artículos, historial de movimientos,
// stock bajo y conciliación libro/inventario. Solo lectura; toda mutación pasa
// por el motor de despacho.
type UseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
}

// NewUseCase construye el caso de uso de consultas de inventario.
func NewUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// ListItems devuelve los artículos, opcionalmente filtrados por categoría/departamento.
func (uc *UseCase) ListItems(ctx context.Context, category string, includeInactive bool) ([]*entity.Item, error) {
	return uc.itemRepo.List(ctx, category, includeInactive)
}

// GetItem devuelve un artículo por ID o ErrItemNotFound.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// DeactivateItem da de baja lógica un artículo. Nunca se elimina físicamente:
// el libro de movimientos lo sigue referenciando.
func (uc *UseCase) DeactivateItem(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	return uc.itemRepo.Deactivate(ctx, id)
}

// ListMovements devuelve el historial de movimientos, el más reciente primero.
func (uc *UseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.List(ctx, filter)
}

// LowStockList devuelve los artículos en o bajo el punto de reorden con la
// cantidad sugerida de pedido (stock ideal = 2x el punto de reorden),
// ordenados por déficit relativo. Priority 1 = más urgente.
func (uc *UseCase) LowStockList(ctx context.Context) ([]dto.LowStockSuggestionDTO, error) {
	items, err := uc.itemRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.LowStockSuggestionDTO, 0, len(items))
	for _, item := range items {
		suggested := item.MinStock*2 - item.StockQty
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.LowStockSuggestionDTO{
			ItemID:            item.ID,
			Name:              item.Name,
			Category:          item.Category,
			CurrentStock:      item.StockQty,
			MinStock:          item.MinStock,
			SuggestedOrderQty: suggested,
			EstimatedCost:     item.UnitCost.Mul(decimal.NewFromInt(suggested)),
		})
	}
	// Mayor déficit absoluto primero; a igual déficit, menor stock actual
	sort.SliceStable(suggestions, func(i, j int) bool {
		defI := suggestions[i].MinStock - suggestions[i].CurrentStock
		defJ := suggestions[j].MinStock - suggestions[j].CurrentStock
		if defI != defJ {
			return defI > defJ
		}
		return suggestions[i].CurrentStock < suggestions[j].CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// Reconcile compara por artículo la suma de deltas del libro contra el stock
// actual y devuelve solo las discrepancias. Con el alta de stock inicial
// registrada como stock_in, la diferencia esperada es siempre cero; una fila
// aquí delata una mutación sin rastro de auditoría.
func (uc *UseCase) Reconcile(ctx context.Context) ([]dto.ReconciliationRowDTO, error) {
	items, err := uc.itemRepo.List(ctx, "", true)
	if err != nil {
		return nil, err
	}
	var rows []dto.ReconciliationRowDTO
	for _, item := range items {
		sum, err := uc.movRepo.SumByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if sum != item.StockQty {
			rows = append(rows, dto.ReconciliationRowDTO{
				ItemID:     item.ID,
				Name:       item.Name,
				StockQty:   item.StockQty,
				LedgerSum:  sum,
				Difference: item.StockQty - sum,
			})
		}
	}
	return rows, nil
}
