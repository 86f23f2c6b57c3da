package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/application/inventory"
	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
	"github.com/jhoicas/hotel-stock-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*inventory.UseCase, *fulfillment.Engine, *memory.TxRunner) {
	t.Helper()
	runner := memory.NewTxRunner()
	engine := fulfillment.NewEngine(runner)
	uc := inventory.NewUseCase(runner.Items, runner.Movs)
	return uc, engine, runner
}

func seedItem(t *testing.T, engine *fulfillment.Engine, name string, qty, minStock int64, cost int64) *entity.Item {
	t.Helper()
	item, err := engine.CreateItem(context.Background(), fulfillment.CreateItemInput{
		Name:       name,
		Category:   "lencería",
		Unit:       "pieza",
		UnitCost:   decimal.NewFromInt(cost),
		InitialQty: qty,
		MinStock:   minStock,
		Actor:      "admin",
	})
	require.NoError(t, err)
	return item
}

func TestGetItem_Inexistente(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.GetItem(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// La baja es lógica: el artículo desaparece del listado por defecto pero su
// historial sigue disponible.
func TestDeactivateItem(t *testing.T) {
	uc, engine, _ := setup(t)
	item := seedItem(t, engine, "Bath Towels", 50, 10, 12)
	ctx := context.Background()

	require.NoError(t, uc.DeactivateItem(ctx, item.ID))

	active, err := uc.ListItems(ctx, "", false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := uc.ListItems(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	movs, err := uc.ListMovements(ctx, repository.MovementFilter{ItemID: item.ID})
	require.NoError(t, err)
	assert.Len(t, movs, 1, "el libro debe conservar el historial del artículo dado de baja")
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_FiltroYOrden(t *testing.T) {
	uc, engine, _ := setup(t)
	seedItem(t, engine, "Bath Towels", 50, 10, 12)
	ctx := context.Background()

	_, err := engine.Distribute(ctx, fulfillment.Input{ItemName: "Bath Towels", Quantity: 5, Actor: "a", Department: "habitaciones"})
	require.NoError(t, err)
	_, err = engine.RegisterDamage(ctx, fulfillment.Input{ItemName: "Bath Towels", Quantity: 2, Actor: "a"})
	require.NoError(t, err)

	// Sin filtro: todas, la más reciente primero
	movs, err := uc.ListMovements(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementTypeDamage, movs[0].Type)
	assert.Equal(t, entity.MovementTypeStockIn, movs[2].Type)

	// Filtro por tipo
	dist, err := uc.ListMovements(ctx, repository.MovementFilter{Type: entity.MovementTypeDistributed})
	require.NoError(t, err)
	require.Len(t, dist, 1)
	assert.Equal(t, int64(-5), dist[0].Quantity)

	// Tipo desconocido se rechaza
	_, err = uc.ListMovements(ctx, repository.MovementFilter{Type: "teletransporte"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_RangoDeFechas(t *testing.T) {
	uc, engine, _ := setup(t)
	seedItem(t, engine, "Bath Towels", 50, 10, 12)
	ctx := context.Background()

	futuro := time.Now().Add(time.Hour)
	movs, err := uc.ListMovements(ctx, repository.MovementFilter{From: &futuro})
	require.NoError(t, err)
	assert.Empty(t, movs, "fuera del rango no debe devolver movimientos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockList_SugerenciaYPrioridad(t *testing.T) {
	uc, engine, _ := setup(t)
	// en punto de reorden exacto
	seedItem(t, engine, "Bath Towels", 10, 10, 12)
	// muy por debajo del punto de reorden
	seedItem(t, engine, "Jabones", 2, 20, 1)
	// con stock de sobra: no debe aparecer
	seedItem(t, engine, "Sábanas", 80, 10, 30)

	list, err := uc.LowStockList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Jabones tiene el mayor déficit: prioridad 1
	assert.Equal(t, "Jabones", list[0].Name)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, int64(38), list[0].SuggestedOrderQty, "sugerido = 2*mínimo - stock")
	assert.True(t, list[0].EstimatedCost.Equal(decimal.NewFromInt(38)))

	assert.Equal(t, "Bath Towels", list[1].Name)
	assert.Equal(t, 2, list[1].Priority)
	assert.Equal(t, int64(10), list[1].SuggestedOrderQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación libro/inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_SinDiscrepancias(t *testing.T) {
	uc, engine, _ := setup(t)
	seedItem(t, engine, "Bath Towels", 50, 10, 12)
	ctx := context.Background()

	_, err := engine.Distribute(ctx, fulfillment.Input{ItemName: "Bath Towels", Quantity: 20, Actor: "a", Department: "habitaciones"})
	require.NoError(t, err)

	rows, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows, "toda mutación por el motor deja el libro cuadrado")
}

// Una mutación directa sobre el stock, sin pasar por el motor, descuadra el
// libro y la conciliación la delata.
func TestReconcile_DetectaDescuadre(t *testing.T) {
	uc, engine, runner := setup(t)
	item := seedItem(t, engine, "Bath Towels", 50, 10, 12)
	ctx := context.Background()

	_, err := runner.Items.AdjustQty(ctx, item.ID, -7)
	require.NoError(t, err)

	rows, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, item.ID, rows[0].ItemID)
	assert.Equal(t, int64(43), rows[0].StockQty)
	assert.Equal(t, int64(50), rows[0].LedgerSum)
	assert.Equal(t, int64(-7), rows[0].Difference)
}
