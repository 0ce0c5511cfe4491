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
	"github.com/jhoicas/FlotaStock-api/internal/application/auth"
	appledger "github.com/jhoicas/FlotaStock-api/internal/application/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/application/reports"
	"github.com/jhoicas/FlotaStock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/FlotaStock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/FlotaStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/FlotaStock-api/internal/interfaces/http"
	"github.com/jhoicas/FlotaStock-api/pkg/config"
	"github.com/jhoicas/FlotaStock-api/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	countRepo := postgres.NewCountSnapshotRepository(pool)
	eventRepo := postgres.NewMovementEventRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	jobUC := usecase.NewJobUseCase(jobRepo)
	countUC := usecase.NewCountUseCase(countRepo, itemRepo)
	registerMovementUC := appledger.NewRegisterMovementUseCase(txRunner, itemRepo, nil)
	queryUC := appledger.NewQueryUseCase(eventRepo, itemRepo, jobRepo, nil)
	metricsUC := appledger.NewMetricsUseCase(eventRepo, countRepo, itemRepo, nil, cfg.Ledger.WindowDays)

	// PDF: reporte imprimible de saldos y préstamos vencidos
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := reports.NewStockReportUseCase(queryUC, companyRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FlotaStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:        companyUC,
		ItemUC:           itemUC,
		JobUC:            jobUC,
		CountUC:          countUC,
		RegisterMovement: registerMovementUC,
		QueryUC:          queryUC,
		MetricsUC:        metricsUC,
		ReportUC:         reportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
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
