package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcastano/taller-api/internal/application/auth"
	"github.com/jcastano/taller-api/internal/application/inventory"
	"github.com/jcastano/taller-api/internal/application/orders"
	"github.com/jcastano/taller-api/internal/application/reporting"
	"github.com/jcastano/taller-api/internal/application/scheduling"
	"github.com/jcastano/taller-api/internal/application/usecase"
	infrapdf "github.com/jcastano/taller-api/internal/infrastructure/pdf"
	"github.com/jcastano/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastano/taller-api/internal/interfaces/http"
	"github.com/jcastano/taller-api/pkg/config"
	"github.com/jcastano/taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	mechanicRepo := postgres.NewMechanicRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	serviceOrderRepo := postgres.NewServiceOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	partUC := usecase.NewPartUseCase(partRepo)
	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, partRepo, movementRepo)
	orderUC := orders.NewUseCase(txRunner, orderRepo, partRepo, customerRepo, supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, vehicleRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	mechanicUC := usecase.NewMechanicUseCase(mechanicRepo)
	schedulingUC := scheduling.NewUseCase(appointmentRepo, vehicleRepo, mechanicRepo)
	serviceOrderUC := usecase.NewServiceOrderUseCase(
		txRunner, serviceOrderRepo, partRepo, vehicleRepo, mechanicRepo, appointmentRepo,
	)
	reportingUC := reporting.NewUseCase(reportRepo, partRepo, movementRepo)

	// PDF: factura de venta del taller
	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator(infrapdf.WorkshopInfo{
		Name:    cfg.Workshop.Name,
		NIT:     cfg.Workshop.NIT,
		Address: cfg.Workshop.Address,
		Phone:   cfg.Workshop.Phone,
		Email:   cfg.Workshop.Email,
	})
	orderPDFUC := orders.NewPDFUseCase(orderRepo, customerRepo, partRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		PartUC:         partUC,
		RecordMovement: recordMovementUC,
		OrderUC:        orderUC,
		OrderPDFUC:     orderPDFUC,
		CustomerUC:     customerUC,
		SupplierUC:     supplierUC,
		MechanicUC:     mechanicUC,
		SchedulingUC:   schedulingUC,
		ServiceOrderUC: serviceOrderUC,
		ReportingUC:    reportingUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
