package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-stock-api/internal/application/dto"
	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/application/inventory"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name       string          `json:"name" validate:"required"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	InitialQty int64           `json:"initial_qty" validate:"omitempty,min=0"`
	MinStock   int64           `json:"min_stock" validate:"omitempty,min=0"`
}

// ItemHandler maneja el catálogo de inventario (protegido).
type ItemHandler struct {
	engine *fulfillment.Engine
	uc     *inventory.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(engine *fulfillment.Engine, uc *inventory.UseCase) *ItemHandler {
	return &ItemHandler{engine: engine, uc: uc}
}

// Create da de alta un artículo; el stock inicial queda en el libro como stock_in.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validationError(c, in); err != nil {
		return err
	}
	item, err := h.engine.CreateItem(c.Context(), fulfillment.CreateItemInput{
		Name:       in.Name,
		Category:   in.Category,
		Unit:       in.Unit,
		UnitCost:   in.UnitCost,
		InitialQty: in.InitialQty,
		MinStock:   in.MinStock,
		Actor:      GetActor(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// List devuelve artículos, opcionalmente filtrados por categoría.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	includeInactive := c.QueryBool("include_inactive", false)
	items, err := h.uc.ListItems(c.Context(), category, includeInactive)
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	return c.JSON(fiber.Map{"total": len(resp), "items": resp})
}

// GetByID devuelve un artículo.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Deactivate baja lógica del artículo (el historial lo sigue referenciando).
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.DeactivateItem(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo dado de baja"})
}

// LowStock devuelve los artículos en o bajo punto de reorden con sugerencia de pedido.
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.uc.LowStockList(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "suggestions": list})
}
