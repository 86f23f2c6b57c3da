package fulfillment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// Engine es el motor de despacho: la única vía por la que cambia el stock.
// Encapsula validar → mutar → registrar en el libro como unidad atómica
// (bloqueo de fila con SELECT FOR UPDATE y Commit/Rollback vía TxRunner).
type Engine struct {
	txRunner TxRunner
}

// NewEngine construye el motor de despacho.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// Input entrada para un movimiento de salida (despacho, daño) o ajuste.
type Input struct {
	ItemName   string
	Quantity   int64 // positiva en despachos/daños; con signo en ajustes
	Actor      string
	Department string
	Notes      string
}

// Result snapshot del artículo tras la mutación más la entrada del libro que la registró.
type Result struct {
	Item     *entity.Item
	Movement *entity.Movement
}

// Distribute despacha stock a un departamento (acción push del administrador).
// Falla con ErrItemNotFound o InsufficientStockError sin tocar ningún estado.
func (e *Engine) Distribute(ctx context.Context, in Input) (*Result, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var res *Result
	err := e.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.PurchaseLineRepository,
		_ repository.RequestRepository,
	) error {
		var err error
		res, err = e.FulfillInTx(ctx, itemRepo, movRepo, in, entity.MovementTypeDistributed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RegisterDamage da de baja stock dañado. Misma ruta que el despacho pero con
// tipo damage y sin departamento destino obligatorio.
func (e *Engine) RegisterDamage(ctx context.Context, in Input) (*Result, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var res *Result
	err := e.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.PurchaseLineRepository,
		_ repository.RequestRepository,
	) error {
		var err error
		res, err = e.FulfillInTx(ctx, itemRepo, movRepo, in, entity.MovementTypeDamage)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Adjust aplica un ajuste manual con signo. Un ajuste negativo valida
// disponibilidad igual que una salida; uno positivo suma sin más control.
func (e *Engine) Adjust(ctx context.Context, in Input) (*Result, error) {
	if in.Quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var res *Result
	err := e.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.PurchaseLineRepository,
		_ repository.RequestRepository,
	) error {
		item, err := itemRepo.GetByNameForUpdate(ctx, in.ItemName)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if in.Quantity < 0 && item.StockQty < -in.Quantity {
			return &domain.InsufficientStockError{Available: item.StockQty, Requested: -in.Quantity}
		}
		updated, err := itemRepo.AdjustQty(ctx, item.ID, in.Quantity)
		if err != nil {
			return err
		}
		mov := newMovement(item, entity.MovementTypeAdjustment, in.Quantity, in)
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		res = &Result{Item: updated, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FulfillInTx ejecuta una salida usando los repositorios proporcionados
// (misma transacción del caller). Lo usa la aprobación de solicitudes para que
// el cambio de estado y el despacho compartan Commit/Rollback.
func (e *Engine) FulfillInTx(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	in Input,
	movType string,
) (*Result, error) {
	// Bloquea la fila del artículo (SELECT FOR UPDATE); resolución por nombre case-insensitive
	item, err := itemRepo.GetByNameForUpdate(ctx, in.ItemName)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active {
		return nil, domain.ErrItemNotFound
	}
	if item.StockQty < in.Quantity {
		return nil, &domain.InsufficientStockError{Available: item.StockQty, Requested: in.Quantity}
	}
	updated, err := itemRepo.AdjustQty(ctx, item.ID, -in.Quantity)
	if err != nil {
		return nil, err
	}
	mov := newMovement(item, movType, -in.Quantity, in)
	if err := movRepo.Append(ctx, mov); err != nil {
		return nil, err
	}
	return &Result{Item: updated, Movement: mov}, nil
}

// CreateItemInput entrada para dar de alta un artículo en inventario.
type CreateItemInput struct {
	Name       string
	Category   string
	Unit       string
	UnitCost   decimal.Decimal
	InitialQty int64
	MinStock   int64
	Actor      string
}

// CreateItem da de alta un artículo. El stock inicial queda registrado como
// entrada stock_in en el libro, en la misma transacción: la suma de deltas del
// libro siempre iguala el stock actual.
// Si ya existe un artículo con el mismo nombre devuelve ErrDuplicateItem
// (el caller debe usar la recepción de compras para sumar stock).
func (e *Engine) CreateItem(ctx context.Context, in CreateItemInput) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.InitialQty < 0 || in.MinStock < 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Item
	err := e.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.PurchaseLineRepository,
		_ repository.RequestRepository,
	) error {
		existing, err := itemRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateItem
		}
		now := time.Now()
		item := &entity.Item{
			ID:        uuid.New().String(),
			Name:      name,
			Category:  in.Category,
			Unit:      in.Unit,
			UnitCost:  in.UnitCost,
			StockQty:  in.InitialQty,
			MinStock:  in.MinStock,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if in.InitialQty > 0 {
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				ItemName:  item.Name,
				Type:      entity.MovementTypeStockIn,
				Quantity:  in.InitialQty,
				UserName:  in.Actor,
				Notes:     "stock inicial",
				CreatedAt: now,
			}
			if err := movRepo.Append(ctx, mov); err != nil {
				return err
			}
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func newMovement(item *entity.Item, movType string, delta int64, in Input) *entity.Movement {
	return &entity.Movement{
		ID:         uuid.New().String(),
		ItemID:     item.ID,
		ItemName:   item.Name,
		Type:       movType,
		Quantity:   delta,
		UserName:   in.Actor,
		Notes:      in.Notes,
		Department: in.Department,
		CreatedAt:  time.Now(),
	}
}
