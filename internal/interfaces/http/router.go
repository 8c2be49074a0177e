package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/taller-api/internal/application/auth"
	"github.com/jcastano/taller-api/internal/application/inventory"
	"github.com/jcastano/taller-api/internal/application/orders"
	"github.com/jcastano/taller-api/internal/application/reporting"
	"github.com/jcastano/taller-api/internal/application/scheduling"
	"github.com/jcastano/taller-api/internal/application/usecase"
	"github.com/jcastano/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	PartUC         *usecase.PartUseCase
	RecordMovement *inventory.RecordMovementUseCase
	OrderUC        *orders.UseCase
	OrderPDFUC     *orders.PDFUseCase
	CustomerUC     *usecase.CustomerUseCase
	SupplierUC     *usecase.SupplierUseCase
	MechanicUC     *usecase.MechanicUseCase
	SchedulingUC   *scheduling.UseCase
	ServiceOrderUC *usecase.ServiceOrderUseCase
	ReportingUC    *reporting.UseCase
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
	staff := []string{entity.RoleAdmin, entity.RoleRecepcion}

	// Parts (protegido; escritura solo admin y recepción)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", RequireRole(staff...), partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", RequireRole(staff...), partHandler.Update)

	// Inventory movements (protegido; registrar solo admin y recepción)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordMovement)
	invGroup.Post("/movements", RequireRole(staff...), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Órdenes: compras, órdenes de compra y órdenes de venta comparten handler.
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC)
	registerOrderRoutes(protected, "/purchases", orderHandler, entity.OrderKindPurchase, staff)
	registerOrderRoutes(protected, "/purchase-orders", orderHandler, entity.OrderKindPurchaseOrder, staff)
	registerOrderRoutes(protected, "/sales-orders", orderHandler, entity.OrderKindSalesOrder, staff)
	protected.Get("/sales-orders/:id/invoice", orderHandler.Invoice)

	// Customers y vehículos (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", RequireRole(staff...), customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/:id/vehicles", RequireRole(staff...), customerHandler.AddVehicle)
	customers.Get("/:id/vehicles", customerHandler.ListVehicles)
	protected.Get("/vehicles/plate/:plate", customerHandler.GetVehicleByPlate)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", RequireRole(staff...), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Mechanics (protegido; escritura solo admin)
	mechanics := protected.Group("/mechanics")
	mechanicHandler := NewMechanicHandler(deps.MechanicUC)
	mechanics.Post("/", RequireRole(entity.RoleAdmin), mechanicHandler.Create)
	mechanics.Get("/", mechanicHandler.List)
	mechanics.Get("/:id", mechanicHandler.GetByID)
	mechanics.Patch("/:id/active", RequireRole(entity.RoleAdmin), mechanicHandler.SetActive)

	// Appointments (protegido)
	appointments := protected.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.SchedulingUC)
	appointments.Post("/", RequireRole(staff...), appointmentHandler.Create)
	appointments.Get("/:id", appointmentHandler.GetByID)
	appointments.Patch("/:id/reschedule", RequireRole(staff...), appointmentHandler.Reschedule)
	appointments.Patch("/:id/status", appointmentHandler.Transition)
	mechanics.Get("/:id/appointments", appointmentHandler.ListByMechanic)
	protected.Get("/vehicles/:id/appointments", appointmentHandler.ListByVehicle)

	// Service orders (protegido)
	serviceOrders := protected.Group("/service-orders")
	serviceOrderHandler := NewServiceOrderHandler(deps.ServiceOrderUC)
	serviceOrders.Post("/", RequireRole(staff...), serviceOrderHandler.Create)
	serviceOrders.Get("/", serviceOrderHandler.List)
	serviceOrders.Get("/:id", serviceOrderHandler.GetByID)
	serviceOrders.Post("/:id/complete", serviceOrderHandler.Complete)
	serviceOrders.Post("/:id/cancel", RequireRole(staff...), serviceOrderHandler.Cancel)

	// Reports (protegido; solo admin y recepción)
	reports := protected.Group("/reports", RequireRole(staff...))
	reportHandler := NewReportHandler(deps.ReportingUC)
	reports.Get("/sales", reportHandler.SalesSummary)
	reports.Get("/purchases", reportHandler.PurchasesSummary)
	reports.Get("/top-parts", reportHandler.TopParts)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/movements.csv", reportHandler.ExportMovementsCSV)
}

// registerOrderRoutes registra el CRUD de un grupo de órdenes para su kind.
func registerOrderRoutes(router fiber.Router, prefix string, h *OrderHandler, kind entity.OrderKind, writeRoles []string) {
	group := router.Group(prefix)
	group.Post("/", RequireRole(writeRoles...), h.Create(kind))
	group.Get("/", h.List(kind))
	group.Get("/:id", h.GetByID(kind))
	group.Patch("/:id/status", RequireRole(writeRoles...), h.Transition(kind))
}
