package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/dto"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/resolution"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

// CatalogHandler maneja la consulta del catálogo y la reconstrucción forzada
// del índice de matching.
type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
	index       *resolution.IndexProvider
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(catalogRepo repository.CatalogRepository, index *resolution.IndexProvider) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo, index: index}
}

// List godoc
// @Summary      Listar entradas del catálogo
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.CatalogListResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	page.DefaultPage()

	entries, err := h.catalogRepo.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.CatalogListResponse{
		Items: make([]dto.CatalogEntryResponse, 0, len(entries)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range entries {
		out.Items = append(out.Items, dto.NewCatalogEntryResponse(e))
	}
	return c.JSON(out)
}

// Rebuild godoc
// @Summary      Forzar la reconstrucción del índice de matching
// @Description  Útil tras cargas masivas de catálogo; el intercambio del snapshot es atómico.
// @Tags         catalog
// @Produce      json
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/catalog/rebuild [post]
func (h *CatalogHandler) Rebuild(c *fiber.Ctx) error {
	if err := h.index.Rebuild(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
