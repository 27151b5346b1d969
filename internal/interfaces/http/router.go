package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abastecimiento-api/internal/application/auth"
	"github.com/jhoicas/Abastecimiento-api/internal/application/inventory"
	"github.com/jhoicas/Abastecimiento-api/internal/application/procurement"
	"github.com/jhoicas/Abastecimiento-api/internal/application/usecase"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	LedgerUC      *inventory.LedgerUseCase
	ProcurementUC *procurement.ProcurementUseCase
	SupplierUC    *procurement.SupplierUseCase
	PurchaseOrder *procurement.PurchaseOrderUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	const (
		admin     = entity.RoleAdmin
		manager   = entity.RoleManager
		logistics = entity.RoleLogistics
	)
	anyRole := RequireRole(admin, manager, logistics)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Procurement
	proc := protected.Group("/procurement")
	procHandler := NewProcurementHandler(deps.ProcurementUC)
	proc.Get("/health", anyRole, procHandler.Health)
	proc.Get("/recommendations", anyRole, procHandler.Recommendations)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := proc.Group("/suppliers")
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Post("/", RequireRole(admin, manager), supplierHandler.Create)
	suppliers.Get("/analysis", anyRole, supplierHandler.Analysis)
	suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
	suppliers.Get("/:id/score", anyRole, supplierHandler.Score)
	suppliers.Post("/:id/negotiation-email", RequireRole(admin, manager), supplierHandler.NegotiationEmail)

	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrder)
	orders := proc.Group("/purchase-orders")
	orders.Get("/", anyRole, poHandler.List)
	orders.Post("/", RequireRole(admin, manager), poHandler.Create)
	orders.Get("/:id", anyRole, poHandler.GetByID)
	orders.Put("/:id/status", anyRole, poHandler.SetStatus)
	orders.Get("/:id/pdf", anyRole, poHandler.PDF)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", anyRole, productHandler.List)
	products.Post("/", RequireRole(admin, logistics), productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", RequireRole(admin, logistics), productHandler.Update)
	products.Delete("/:id", RequireRole(admin, logistics), productHandler.Archive)

	// Inventory ledger
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inv := protected.Group("/inventory")
	inv.Post("/movements", RequireRole(admin, logistics), inventoryHandler.RegisterMovement)
	inv.Get("/products/:id/logs", anyRole, inventoryHandler.ListLogs)
	inv.Get("/products/:id/audit", anyRole, inventoryHandler.Audit)
	inv.Get("/analysis", anyRole, inventoryHandler.Analysis)
}
