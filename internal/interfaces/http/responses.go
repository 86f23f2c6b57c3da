package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-stock-api/internal/application/dto"
	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/pkg/validator"
)

func toItemResponse(item *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		Unit:      item.Unit,
		UnitCost:  item.UnitCost,
		StockQty:  item.StockQty,
		MinStock:  item.MinStock,
		LowStock:  item.LowStock(),
		Active:    item.Active,
		UpdatedAt: item.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		ItemID:     m.ItemID,
		ItemName:   m.ItemName,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UserName:   m.UserName,
		Notes:      m.Notes,
		Department: m.Department,
		CreatedAt:  m.CreatedAt,
	}
}

func toFulfillmentResponse(res *fulfillment.Result) dto.FulfillmentResponse {
	return dto.FulfillmentResponse{
		Item:     toItemResponse(res.Item),
		Movement: toMovementResponse(res.Movement),
	}
}

func toRequestResponse(req *entity.StockRequest) dto.StockRequestResponse {
	return dto.StockRequestResponse{
		ID:          req.ID,
		Department:  req.Department,
		RequestedBy: req.RequestedBy,
		ItemName:    req.ItemName,
		ItemID:      req.ItemID,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Reason:      req.Reason,
		Status:      req.Status,
		Archived:    req.Archived,
		Notes:       req.Notes,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}

func toPurchaseLineResponse(line *entity.PurchaseLine) dto.PurchaseLineResponse {
	return dto.PurchaseLineResponse{
		ID:         line.ID,
		OrderRef:   line.OrderRef,
		ItemName:   line.ItemName,
		Category:   line.Category,
		Unit:       line.Unit,
		UnitCost:   line.UnitCost,
		OrderedQty: line.OrderedQty,
		PostedQty:  line.PostedQty,
		Remaining:  line.Remaining(),
		CreatedAt:  line.CreatedAt,
	}
}

// validationError responde 400 con el primer campo que falló, o nil si el DTO es válido.
func validationError(c *fiber.Ctx, body any) error {
	if details := validator.ValidateStruct(body); len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: details[0].String()})
	}
	return nil
}

// domainError mapea los errores de dominio a estados HTTP; los fallos de
// almacenamiento se devuelven tal cual como 500 para log/diagnóstico.
func domainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "INSUFFICIENT_STOCK",
			"message":   insufficient.Error(),
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	}
	var overPosting *domain.OverPostingError
	if errors.As(err, &overPosting) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "OVER_POSTING",
			"message":   overPosting.Error(),
			"ordered":   overPosting.Ordered,
			"posted":    overPosting.Posted,
			"attempted": overPosting.Attempted,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateItem), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyResolved):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RESOLVED", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
