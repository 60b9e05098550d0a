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

	_ "github.com/JBeggs/fambrifarms-backend-sub000/docs"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/resolution"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/stock"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/matching"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/JBeggs/fambrifarms-backend-sub000/internal/interfaces/http"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/config"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/logger"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalogRepo := postgres.NewCatalogRepository(pool)
	lotRepo := postgres.NewStockLotRepository(pool)
	pricingRepo := postgres.NewPricingRuleRepository(pool)
	resolutionRepo := postgres.NewResolutionRepository(pool)
	lineRepo := postgres.NewOrderLineRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Índice de catálogo: snapshot inicial + reconstrucción periódica
	indexProvider := resolution.NewIndexProvider(catalogRepo, log)
	if err := indexProvider.Rebuild(ctx); err != nil {
		log.Fatal().Err(err).Msg("construcción inicial del índice de catálogo")
	}
	go indexProvider.Run(ctx, cfg.Matching.RebuildInterval)

	scorer := matching.NewScorer(matching.Weights{
		ExactName:     cfg.Matching.ExactNameWeight,
		WordOverlap:   cfg.Matching.WordOverlapWeight,
		UnitMatch:     cfg.Matching.UnitMatchWeight,
		DescriptorHit: cfg.Matching.DescriptorHitWeight,
		DescriptorCap: cfg.Matching.DescriptorCapWeight,
		AliasMatch:    cfg.Matching.AliasMatchWeight,
		PhoneticMax:   cfg.Matching.PhoneticMaxWeight,
	}, matching.DefaultAliases())
	policy := matching.NewPolicy(matching.Thresholds{
		Auto:           cfg.Matching.AutoThreshold,
		TopSuggestion:  cfg.Matching.TopSuggestionThreshold,
		SuggestionList: cfg.Matching.SuggestionListThreshold,
	}, cfg.Matching.MaxSuggestions)

	reservationUC := stock.NewReservationUseCase(txRunner, log)
	availabilityUC := stock.NewAvailabilityUseCase(lotRepo)
	resolveUC := resolution.NewResolveLineUseCase(indexProvider, resolutionRepo, scorer, policy, log)
	confirmUC := resolution.NewConfirmMatchUseCase(catalogRepo, pricingRepo, lineRepo, reservationUC, log)

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
		Title:    "Fambri Orders API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ResolveUC:      resolveUC,
		ConfirmUC:      confirmUC,
		AvailabilityUC: availabilityUC,
		ReservationUC:  reservationUC,
		CatalogRepo:    catalogRepo,
		IndexProvider:  indexProvider,
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
	cancel() // detiene la reconstrucción periódica del índice

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
