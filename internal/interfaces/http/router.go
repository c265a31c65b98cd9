package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/farm-ledger/internal/application/auth"
	"github.com/agrovida/farm-ledger/internal/application/catalog"
	"github.com/agrovida/farm-ledger/internal/application/ledger"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC  *ledger.LedgerUseCase
	CatalogUC *catalog.CatalogUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Organizations (público por ahora; alta de tenant previa al registro de usuarios)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	organizations := api.Group("/organizations")
	organizations.Post("/", catalogHandler.CreateOrganization)
	organizations.Get("/", catalogHandler.ListOrganizations)
	organizations.Get("/:id", catalogHandler.GetOrganization)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de productos (protegido; escritura solo admin)
	commodities := protected.Group("/commodities")
	commodities.Post("/", RequireRole(entity.RoleAdmin), catalogHandler.CreateCommodity)
	commodities.Get("/", catalogHandler.ListCommodities)
	commodities.Get("/:id", catalogHandler.GetCommodity)

	// Fincas (protegido; escritura solo admin)
	farms := protected.Group("/farms")
	farms.Post("/", RequireRole(entity.RoleAdmin), catalogHandler.CreateFarm)
	farms.Get("/", catalogHandler.ListFarms)
	farms.Get("/:id", catalogHandler.GetFarm)

	// Ledger de inventario (protegido). Las mutaciones requieren rol operador o
	// superior; las consultas están abiertas a cualquier rol autenticado.
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	batches := protected.Group("/ledger/batches")
	mutate := RequireRole(entity.RoleAdmin, entity.RoleOperator)

	batches.Post("/", mutate, ledgerHandler.CreateBatch)
	batches.Get("/", ledgerHandler.ListBatches)
	batches.Get("/:id", ledgerHandler.GetBatch)
	batches.Post("/:id/adjust", mutate, ledgerHandler.Adjust)
	batches.Post("/:id/reserve", mutate, ledgerHandler.Reserve)
	batches.Post("/:id/release", mutate, ledgerHandler.Release)
	batches.Post("/:id/transfer", mutate, ledgerHandler.Transfer)
	batches.Post("/:id/merge", mutate, ledgerHandler.Merge)
	batches.Post("/:id/split", mutate, ledgerHandler.Split)
	batches.Post("/:id/quality-test", mutate, ledgerHandler.QualityTest)
	batches.Post("/:id/expire", mutate, ledgerHandler.Expire)
	batches.Get("/:id/movements", ledgerHandler.Movements)
	batches.Get("/:id/traceability", ledgerHandler.Traceability)
}
