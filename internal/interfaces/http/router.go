package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/resolution"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/stock"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ResolveUC      *resolution.ResolveLineUseCase
	ConfirmUC      *resolution.ConfirmMatchUseCase
	AvailabilityUC *stock.AvailabilityUseCase
	ReservationUC  *stock.ReservationUseCase
	CatalogRepo    repository.CatalogRepository
	IndexProvider  *resolution.IndexProvider
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Pipeline de resolución de líneas
	lines := api.Group("/lines")
	resolutionHandler := NewResolutionHandler(deps.ResolveUC, deps.ConfirmUC)
	lines.Post("/resolve", resolutionHandler.Resolve)
	lines.Post("/confirm", resolutionHandler.Confirm)
	lines.Get("/resolutions/:id", resolutionHandler.GetResolution)
	api.Post("/orderlines/:id/void", resolutionHandler.Void)

	// Ciclo de vida de reservas (dos fases) y consultas de stock
	stockHandler := NewStockHandler(deps.AvailabilityUC, deps.ReservationUC)
	api.Post("/reservations/:id/confirm", stockHandler.ConfirmReservation)
	api.Post("/reservations/:id/release", stockHandler.ReleaseReservation)
	api.Get("/stock/:productID", stockHandler.Position)

	// Catálogo e índice
	catalog := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogRepo, deps.IndexProvider)
	catalog.Get("/products", catalogHandler.List)
	catalog.Post("/rebuild", catalogHandler.Rebuild)
}
