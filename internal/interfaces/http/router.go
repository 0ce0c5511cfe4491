package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FlotaStock-api/internal/application/auth"
	appledger "github.com/jhoicas/FlotaStock-api/internal/application/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/application/reports"
	"github.com/jhoicas/FlotaStock-api/internal/application/usecase"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	ItemUC           *usecase.ItemUseCase
	JobUC            *usecase.JobUseCase
	CountUC          *usecase.CountUseCase
	RegisterMovement *appledger.RegisterMovementUseCase
	QueryUC          *appledger.QueryUseCase
	MetricsUC        *appledger.MetricsUseCase
	ReportUC         *reports.StockReportUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de ítems (protegido; escritura para bodeguero)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", RequireRole(entity.RoleBodeguero), itemHandler.Create)
	items.Get("/:code", itemHandler.GetByCode)
	items.Put("/:code", RequireRole(entity.RoleBodeguero), itemHandler.Update)
	items.Delete("/:code", RequireRole(entity.RoleBodeguero), itemHandler.Delete)

	// Obras (protegido; escritura para bodeguero)
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Get("/", jobHandler.List)
	jobs.Post("/", RequireRole(entity.RoleBodeguero), jobHandler.Create)
	jobs.Get("/:code", jobHandler.GetByCode)
	jobs.Put("/:code", RequireRole(entity.RoleBodeguero), jobHandler.Update)
	jobs.Delete("/:code", RequireRole(entity.RoleBodeguero), jobHandler.Delete)

	// Conteos físicos (protegido)
	counts := protected.Group("/counts")
	countHandler := NewCountHandler(deps.CountUC)
	counts.Post("/", countHandler.Create)
	counts.Get("/", countHandler.List)

	// Libro de movimientos (protegido)
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.RegisterMovement, deps.QueryUC)
	ledgerGroup.Post("/movements", ledgerHandler.RegisterMovement)
	ledgerGroup.Get("/movements", ledgerHandler.ListMovements)
	ledgerGroup.Get("/stock", ledgerHandler.GetStock)
	ledgerGroup.Get("/overdue", ledgerHandler.GetOverdue)
	ledgerGroup.Get("/incoming", ledgerHandler.GetIncoming)
	// El barrido por tipo es destructivo: solo admin.
	ledgerGroup.Post("/clear", RequireRole(entity.RoleAdmin), ledgerHandler.BulkClear)

	// KPIs (protegido)
	metricsHandler := NewMetricsHandler(deps.MetricsUC)
	protected.Get("/metrics", metricsHandler.GetMetrics)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/stock.pdf", reportHandler.StockReportPDF)
}
