package requests_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/application/requests"
	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func setupUseCase(t *testing.T) (*requests.UseCase, *fulfillment.Engine, *memory.TxRunner) {
	t.Helper()
	runner := memory.NewTxRunner()
	engine := fulfillment.NewEngine(runner)
	uc := requests.NewUseCase(runner, engine, runner.Requests, runner.Items)
	return uc, engine, runner
}

func seedItem(t *testing.T, engine *fulfillment.Engine, name string, qty int64) *entity.Item {
	t.Helper()
	item, err := engine.CreateItem(context.Background(), fulfillment.CreateItemInput{
		Name:       name,
		Category:   "lencería",
		Unit:       "pieza",
		UnitCost:   decimal.NewFromInt(12),
		InitialQty: qty,
		MinStock:   10,
		Actor:      "admin",
	})
	require.NoError(t, err)
	return item
}

func seedRequest(t *testing.T, uc *requests.UseCase, itemName string, qty int64) *entity.StockRequest {
	t.Helper()
	req, err := uc.Create(context.Background(), requests.CreateInput{
		Department:  "habitaciones",
		RequestedBy: "maría",
		ItemName:    itemName,
		Quantity:    qty,
		Unit:        "pieza",
		Reason:      "reposición de pisos",
	})
	require.NoError(t, err)
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_QuedaPendiente(t *testing.T) {
	uc, engine, _ := setupUseCase(t)
	item := seedItem(t, engine, "Bath Towels", 50)

	req := seedRequest(t, uc, "Bath Towels", 20)
	assert.Equal(t, entity.RequestStatusPending, req.Status)
	assert.Equal(t, item.ID, req.ItemID, "debe resolver la referencia al artículo existente")
	assert.False(t, req.Archived)
}

// Puede solicitarse un artículo aún no dado de alta: queda solo el nombre.
func TestCreate_ArticuloNoIngresado(t *testing.T) {
	uc, _, _ := setupUseCase(t)

	req := seedRequest(t, uc, "Batas de Baño", 12)
	assert.Equal(t, entity.RequestStatusPending, req.Status)
	assert.Empty(t, req.ItemID)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	uc, _, _ := setupUseCase(t)

	for _, qty := range []int64{0, -1} {
		_, err := uc.Create(context.Background(), requests.CreateInput{
			Department: "habitaciones",
			ItemName:   "Bath Towels",
			Quantity:   qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}
}

func TestCreate_SinDepartamento(t *testing.T) {
	uc, _, _ := setupUseCase(t)
	_, err := uc.Create(context.Background(), requests.CreateInput{ItemName: "Bath Towels", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

// Aprobar despacha en la misma transacción: solicitud approved, stock
// decrementado y exactamente una entrada distributed en el libro.
func TestApprove_Exitoso(t *testing.T) {
	uc, engine, runner := setupUseCase(t)
	item := seedItem(t, engine, "Bath Towels", 50)
	req := seedRequest(t, uc, "Bath Towels", 20)
	ctx := context.Background()

	res, err := uc.Approve(ctx, req.ID, 0, "aprobado completo", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(30), res.Item.StockQty)
	assert.Equal(t, entity.MovementTypeDistributed, res.Movement.Type)
	assert.Equal(t, int64(-20), res.Movement.Quantity)
	assert.Equal(t, "habitaciones", res.Movement.Department)

	resolved, err := uc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, resolved.Status)

	// stock_in inicial + un único distributed
	assert.Equal(t, 2, runner.Movs.Len())
	sum, _ := runner.Movs.SumByItem(ctx, item.ID)
	assert.Equal(t, int64(30), sum)
}

// Aprobación parcial: se despacha la cantidad indicada, no la solicitada.
func TestApprove_CantidadParcial(t *testing.T) {
	uc, engine, _ := setupUseCase(t)
	seedItem(t, engine, "Bath Towels", 50)
	req := seedRequest(t, uc, "Bath Towels", 20)

	res, err := uc.Approve(context.Background(), req.ID, 15, "parcial por escasez", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(35), res.Item.StockQty)
	assert.Equal(t, int64(-15), res.Movement.Quantity)
}

// Si no alcanza el stock, todo se revierte: la solicitud sigue pendiente, el
// stock queda intacto y el libro no gana entradas.
func TestApprove_StockInsuficienteRevierte(t *testing.T) {
	uc, engine, runner := setupUseCase(t)
	item := seedItem(t, engine, "Bath Towels", 30)
	req := seedRequest(t, uc, "Bath Towels", 40)
	ctx := context.Background()

	_, err := uc.Approve(ctx, req.ID, 0, "", "admin")
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(30), insufficient.Available)
	assert.Equal(t, int64(40), insufficient.Requested)

	pending, err := uc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, pending.Status, "la solicitud debe seguir pendiente")

	current, _ := runner.Items.GetByID(ctx, item.ID)
	assert.Equal(t, int64(30), current.StockQty)
	assert.Equal(t, 1, runner.Movs.Len(), "el rollback no debe dejar entrada en el libro")
}

func TestApprove_ArticuloInexistenteRevierte(t *testing.T) {
	uc, _, _ := setupUseCase(t)
	req := seedRequest(t, uc, "Batas de Baño", 12)
	ctx := context.Background()

	_, err := uc.Approve(ctx, req.ID, 0, "", "admin")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	pending, err := uc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, pending.Status)
}

func TestApprove_YaResuelta(t *testing.T) {
	uc, engine, _ := setupUseCase(t)
	seedItem(t, engine, "Bath Towels", 50)
	req := seedRequest(t, uc, "Bath Towels", 10)
	ctx := context.Background()

	_, err := uc.Approve(ctx, req.ID, 0, "", "admin")
	require.NoError(t, err)

	_, err = uc.Approve(ctx, req.ID, 0, "", "admin")
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
}

func TestApprove_Inexistente(t *testing.T) {
	uc, _, _ := setupUseCase(t)
	_, err := uc.Approve(context.Background(), "no-existe", 0, "", "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos aprobaciones concurrentes de la misma solicitud: exactamente una gana,
// la otra recibe ErrAlreadyResolved y el stock se descuenta una sola vez.
func TestApprove_CarreraConcurrente(t *testing.T) {
	uc, engine, runner := setupUseCase(t)
	item := seedItem(t, engine, "Bath Towels", 50)
	req := seedRequest(t, uc, "Bath Towels", 20)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Approve(ctx, req.ID, 0, "", "admin")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, resolved int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrAlreadyResolved):
			resolved++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "solo una aprobación debe ganar")
	assert.Equal(t, 1, resolved)

	current, _ := runner.Items.GetByID(ctx, item.ID)
	assert.Equal(t, int64(30), current.StockQty, "el stock debe descontarse una sola vez")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject / archivado / borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_NoTocaInventario(t *testing.T) {
	uc, engine, runner := setupUseCase(t)
	item := seedItem(t, engine, "Bath Towels", 50)
	req := seedRequest(t, uc, "Bath Towels", 20)
	ctx := context.Background()

	require.NoError(t, uc.Reject(ctx, req.ID, "sin presupuesto"))

	rejected, err := uc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, rejected.Status)

	current, _ := runner.Items.GetByID(ctx, item.ID)
	assert.Equal(t, int64(50), current.StockQty)
	assert.Equal(t, 1, runner.Movs.Len(), "rechazar no debe generar movimiento")

	// Una vez rechazada, tampoco puede aprobarse
	_, err = uc.Approve(ctx, req.ID, 0, "", "admin")
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
}

func TestToggleArchive_NoAlteraResolucion(t *testing.T) {
	uc, engine, _ := setupUseCase(t)
	seedItem(t, engine, "Bath Towels", 50)
	req := seedRequest(t, uc, "Bath Towels", 5)
	ctx := context.Background()

	_, err := uc.Approve(ctx, req.ID, 0, "", "admin")
	require.NoError(t, err)

	require.NoError(t, uc.ToggleArchive(ctx, req.ID, true))
	archived, err := uc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.Equal(t, entity.RequestStatusApproved, archived.Status, "archivar no debe reabrir la solicitud")

	require.NoError(t, uc.ToggleArchive(ctx, req.ID, false))
	restored, _ := uc.GetByID(ctx, req.ID)
	assert.False(t, restored.Archived)
}

func TestList_FiltraArchivadas(t *testing.T) {
	uc, engine, _ := setupUseCase(t)
	seedItem(t, engine, "Bath Towels", 50)
	ctx := context.Background()

	visible := seedRequest(t, uc, "Bath Towels", 5)
	archivada := seedRequest(t, uc, "Bath Towels", 3)
	require.NoError(t, uc.ToggleArchive(ctx, archivada.ID, true))

	listed, err := uc.List(ctx, "habitaciones", false, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, visible.ID, listed[0].ID)

	all, err := uc.List(ctx, "habitaciones", true, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDelete(t *testing.T) {
	uc, _, _ := setupUseCase(t)
	req := seedRequest(t, uc, "Bath Towels", 5)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, req.ID))
	_, err := uc.GetByID(ctx, req.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
