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

	"github.com/jhoicas/Activos-api/internal/application/borrowing"
	"github.com/jhoicas/Activos-api/internal/application/registry"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
	"github.com/jhoicas/Activos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Activos-api/internal/interfaces/http"
	"github.com/jhoicas/Activos-api/pkg/config"
	"github.com/jhoicas/Activos-api/pkg/logger"
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

	assetRepo := postgres.NewAssetRepository(pool)
	serialRepo := postgres.NewAssetSerialRepository(pool)
	borrowingRepo := postgres.NewBorrowingRepository(pool)
	historyRepo := postgres.NewBorrowingHistoryRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	computerRepo := postgres.NewComputerRepository(pool)

	registryTx := postgres.NewRegistryTxRunner(pool)
	borrowingTx := postgres.NewBorrowingTxRunner(pool)

	assetUC := usecase.NewAssetUseCase(assetRepo, serialRepo, auditRepo)
	registryUC := registry.NewUseCase(registryTx, serialRepo, borrowingRepo)
	borrowingUC := borrowing.NewUseCase(
		borrowingTx, borrowingRepo, historyRepo,
		serialRepo, assetRepo, computerRepo, userRepo, departmentRepo,
	)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	directoryUC := usecase.NewDirectoryUseCase(userRepo, departmentRepo, categoryRepo, computerRepo)

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
		Title:    "Activos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AssetUC:     assetUC,
		RegistryUC:  registryUC,
		BorrowingUC: borrowingUC,
		AuditUC:     auditUC,
		DirectoryUC: directoryUC,
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
