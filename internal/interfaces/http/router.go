package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/reports"
	"github.com/jhoicas/Compras-api/internal/application/request"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RequestUC      *request.UseCase
	SheetUC        *reports.SheetUseCase
	StockUC        *inventory.StockUseCase
	ProductUC      *usecase.ProductUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	LocationUC     *usecase.LocationUseCase
	NotificationUC *usecase.NotificationUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solicitudes de compra (protegido)
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.RequestUC, deps.SheetUC)
	requests.Post("/", requestHandler.Create)
	requests.Get("/", requestHandler.List)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Put("/:id", requestHandler.Update)
	requests.Post("/:id/items", requestHandler.AddItem)
	requests.Get("/:id/history", requestHandler.History)
	requests.Get("/:id/pdf", requestHandler.DownloadPDF)

	// Transiciones del ciclo de vida. Aprobar/rechazar es del comprador (o
	// admin); recibir/instalar es del bodeguero (o admin).
	requests.Post("/:id/submit", requestHandler.Submit)
	requests.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleComprador), requestHandler.Approve)
	requests.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RoleComprador), requestHandler.Reject)
	requests.Post("/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), requestHandler.MarkItemsReceived)
	requests.Post("/:id/install", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), requestHandler.MarkItemsInstalled)
	requests.Post("/:id/complete", requestHandler.Complete)
	requests.Post("/:id/cancel", requestHandler.Cancel)

	// Inventario derivado (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Get("/on-hand", inventoryHandler.OnHand)
	invGroup.Post("/on-hand/batch", inventoryHandler.OnHandBatch)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.ListByWarehouse)
	locations.Get("/:id", locationHandler.GetByID)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.ListMine)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
}
