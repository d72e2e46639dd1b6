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

	"github.com/agroinv/inventario-api/internal/application/analysis"
	"github.com/agroinv/inventario-api/internal/application/importer"
	"github.com/agroinv/inventario-api/internal/application/query"
	"github.com/agroinv/inventario-api/internal/infrastructure/excel"
	"github.com/agroinv/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/agroinv/inventario-api/internal/interfaces/http"
	"github.com/agroinv/inventario-api/internal/normalize"
	"github.com/agroinv/inventario-api/pkg/config"
	"github.com/agroinv/inventario-api/pkg/logger"
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

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	batchRepo := postgres.NewBatchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recordRepo := postgres.NewRecordRepository(pool)
	analysisRepo := postgres.NewAnalysisRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	norm := normalize.New(normalize.DefaultMaps())
	importUC := importer.NewUseCase(
		batchRepo, productRepo, recordRepo, txRunner,
		excel.NewReader(), norm, log, cfg.Import.ChunkSize,
	)
	queryUC := query.NewUseCase(batchRepo, productRepo, recordRepo)
	analysisUC := analysis.NewUseCase(analysisRepo, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Import.MaxUploadSize),
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Agro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ImportUC:   importUC,
		QueryUC:    queryUC,
		AnalysisUC: analysisUC,
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
