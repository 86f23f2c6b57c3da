package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, name, category, unit, unit_cost, stock_qty, min_stock, active, created_at, updated_at"

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo. Devuelve ErrDuplicateItem si ya existe
// uno con el mismo nombre (índice único sobre lower(name)).
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, category, unit, unit_cost, stock_qty, min_stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Unit, item.UnitCost,
		item.StockQty, item.MinStock, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateItem
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get item")
}

// GetByName busca por nombre con comparación case-insensitive exacta. Devuelve nil si no existe.
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE lower(name) = lower($1)`
	return r.scanOne(r.q.QueryRow(ctx, query, name), "get item by name")
}

// GetByNameForUpdate como GetByName pero bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE lower(name) = lower($1) FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, name), "get item for update")
}

// AdjustQty aplica el delta con update condicional: la guarda stock_qty + delta >= 0
// en el WHERE evita que dos sesiones concurrentes dejen el stock negativo.
func (r *ItemRepo) AdjustQty(ctx context.Context, id string, delta int64) (*entity.Item, error) {
	query := `
		UPDATE items SET stock_qty = stock_qty + $2, updated_at = now()
		WHERE id = $1 AND stock_qty + $2 >= 0
		RETURNING ` + itemColumns
	item, err := r.scanOne(r.q.QueryRow(ctx, query, id, delta), "adjust qty")
	if err != nil {
		return nil, err
	}
	if item == nil {
		// Cero filas afectadas: o no existe o el delta dejaría stock negativo
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrItemNotFound
		}
		return nil, &domain.InsufficientStockError{Available: current.StockQty, Requested: -delta}
	}
	return item, nil
}

// UpdateCost actualiza el costo unitario (última compra).
func (r *ItemRepo) UpdateCost(ctx context.Context, id string, unitCost decimal.Decimal) error {
	query := `UPDATE items SET unit_cost = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, unitCost)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	return nil
}

// List devuelve artículos ordenados por nombre, opcionalmente por categoría.
func (r *ItemRepo) List(ctx context.Context, category string, includeInactive bool) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []any{}
	pos := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	if !includeInactive {
		query += " AND active"
	}
	query += " ORDER BY name"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListLowStock devuelve artículos activos en o bajo el punto de reorden.
func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE active AND stock_qty <= min_stock ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Deactivate baja lógica: el artículo deja de aparecer en listados activos
// pero el libro de movimientos sigue referenciándolo.
func (r *ItemRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE items SET active = FALSE, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(&i.ID, &i.Name, &i.Category, &i.Unit, &i.UnitCost,
		&i.StockQty, &i.MinStock, &i.Active, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}

func (r *ItemRepo) scanAll(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Category, &i.Unit, &i.UnitCost,
			&i.StockQty, &i.MinStock, &i.Active, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
