package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// CatalogEntryResponse una entrada del catálogo.
type CatalogEntryResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	BasePrice decimal.Decimal `json:"base_price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// CatalogListResponse lista paginada de entradas.
type CatalogListResponse struct {
	Items []CatalogEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// NewCatalogEntryResponse mapea la entidad a la respuesta HTTP.
func NewCatalogEntryResponse(e entity.CatalogEntry) CatalogEntryResponse {
	return CatalogEntryResponse{
		ID:        e.ID,
		Name:      e.Name,
		Unit:      e.Unit,
		BasePrice: e.BasePrice,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}
