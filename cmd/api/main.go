package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	migrations "github.com/jhoicas/hotel-stock-api/db/migrations"
	"github.com/jhoicas/hotel-stock-api/internal/application/auth"
	"github.com/jhoicas/hotel-stock-api/internal/application/fulfillment"
	"github.com/jhoicas/hotel-stock-api/internal/application/inventory"
	"github.com/jhoicas/hotel-stock-api/internal/application/requests"
	"github.com/jhoicas/hotel-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/hotel-stock-api/internal/interfaces/http"
	"github.com/jhoicas/hotel-stock-api/pkg/config"
	"github.com/jhoicas/hotel-stock-api/pkg/logger"
	"github.com/jhoicas/hotel-stock-api/pkg/migrator"
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

	if err := migrator.RunMigrations(cfg.DB.ConnectionString(), migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	lineRepo := postgres.NewPurchaseLineRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := fulfillment.NewEngine(txRunner)
	inventoryUC := inventory.NewUseCase(itemRepo, movRepo)
	requestsUC := requests.NewUseCase(txRunner, engine, requestRepo, itemRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Engine:      engine,
		InventoryUC: inventoryUC,
		RequestsUC:  requestsUC,
		LineRepo:    lineRepo,
		JWTSecret:   cfg.JWT.Secret,
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
