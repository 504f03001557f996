package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/borrowing"
	"github.com/jhoicas/Activos-api/internal/application/registry"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AssetUC     *usecase.AssetUseCase
	RegistryUC  *registry.UseCase
	BorrowingUC *borrowing.UseCase
	AuditUC     *usecase.AuditUseCase
	DirectoryUC *usecase.DirectoryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo va protegido con Bearer Token;
// la autenticación que emite los tokens vive fuera de este servicio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Catálogo de activos
	assets := api.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id", assetHandler.Update)
	assets.Delete("/:id", assetHandler.Delete)

	// Registro de unidades serializadas
	serials := api.Group("/asset-serials")
	serialHandler := NewSerialHandler(deps.RegistryUC)
	serials.Post("/", serialHandler.Create)
	serials.Get("/", serialHandler.List)
	serials.Get("/:id", serialHandler.GetByID)
	serials.Put("/:id", serialHandler.Update)
	serials.Delete("/:id", serialHandler.Delete)

	// Workflow de préstamos
	borrowings := api.Group("/borrowings")
	borrowingHandler := NewBorrowingHandler(deps.BorrowingUC)
	borrowings.Post("/", borrowingHandler.Create)
	borrowings.Get("/", borrowingHandler.List)
	borrowings.Get("/:id", borrowingHandler.GetByID)
	borrowings.Put("/:id", borrowingHandler.Update)
	borrowings.Delete("/:id", borrowingHandler.Delete)
	borrowings.Post("/:id/approve", borrowingHandler.Approve)
	borrowings.Post("/:id/reject", borrowingHandler.Reject)
	borrowings.Post("/:id/return", borrowingHandler.Return)
	borrowings.Post("/:id/override", borrowingHandler.Override)
	borrowings.Get("/:id/history", borrowingHandler.History)

	// Log de auditoría
	audits := api.Group("/audit-logs")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Get("/", auditHandler.List)
	audits.Get("/modules", auditHandler.Modules)
	audits.Get("/actions", auditHandler.Actions)

	// Directorio (solo lectura)
	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	api.Get("/users", directoryHandler.ListUsers)
	api.Get("/users/:id", directoryHandler.GetUser)
	api.Get("/departments", directoryHandler.ListDepartments)
	api.Get("/departments/:id", directoryHandler.GetDepartment)
	api.Get("/categories", directoryHandler.ListCategories)
	api.Get("/computers", directoryHandler.ListComputers)
	api.Get("/computers/:id", directoryHandler.GetComputer)
}
