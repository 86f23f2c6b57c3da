package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-stock-api/internal/application/auth"
	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/application/inventory"
	"github.com/jhoicas/hotel-stock-api/internal/application/requests"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	Engine      *fulfillment.Engine
	InventoryUC *inventory.UseCase
	RequestsUC  *requests.UseCase
	LineRepo    repository.PurchaseLineRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; alta de usuarios solo admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
		authHandler.Register,
	)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de inventario
	itemHandler := NewItemHandler(deps.Engine, deps.InventoryUC)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), itemHandler.Create)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Deactivate)

	// Despachos, daños, ajustes y libro de movimientos
	inventoryHandler := NewInventoryHandler(deps.Engine, deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/distributions", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), inventoryHandler.Distribute)
	invGroup.Post("/damages", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), inventoryHandler.RegisterDamage)
	invGroup.Post("/adjustments", RequireRole(entity.RoleAdmin), inventoryHandler.Adjust)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/reconciliation", RequireRole(entity.RoleAdmin), inventoryHandler.Reconciliation)

	// Solicitudes de stock
	requestHandler := NewRequestHandler(deps.RequestsUC)
	reqGroup := protected.Group("/requests")
	reqGroup.Post("/", requestHandler.Create)
	reqGroup.Get("/", requestHandler.List)
	reqGroup.Get("/:id", requestHandler.GetByID)
	reqGroup.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), requestHandler.Approve)
	reqGroup.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), requestHandler.Reject)
	reqGroup.Post("/:id/archive", requestHandler.Archive)
	reqGroup.Delete("/:id", RequireRole(entity.RoleAdmin), requestHandler.Delete)

	// Líneas de compra y recepción
	purchaseHandler := NewPurchaseHandler(deps.Engine, deps.LineRepo)
	purchases := protected.Group("/purchases", RequireRole(entity.RoleAdmin, entity.RoleAlmacen))
	purchases.Post("/lines", purchaseHandler.CreateLine)
	purchases.Get("/lines", purchaseHandler.ListLines)
	purchases.Post("/lines/:id/post", purchaseHandler.PostDelivery)
}
