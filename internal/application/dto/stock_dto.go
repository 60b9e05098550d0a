package dto

import (
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/application/stock"
)

// StockLotDTO un lote físico del producto.
type StockLotDTO struct {
	ID        string          `json:"id"`
	Available decimal.Decimal `json:"available_quantity"`
	Reserved  decimal.Decimal `json:"reserved_quantity"`
	Unit      string          `json:"unit"`
}

// FulfillmentPlanDTO vista previa del plan de cumplimiento para una cantidad.
type FulfillmentPlanDTO struct {
	Method      string          `json:"method"`
	Reservable  decimal.Decimal `json:"reservable"`
	Shortfall   decimal.Decimal `json:"shortfall"`
	Allocations []AllocationDTO `json:"allocations"`
}

// AllocationDTO porción de un lote dentro del plan.
type AllocationDTO struct {
	LotID    string          `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// StockPositionResponse posición agregada de stock de un producto.
type StockPositionResponse struct {
	ProductID string              `json:"product_id"`
	Available decimal.Decimal     `json:"available_quantity"`
	Reserved  decimal.Decimal     `json:"reserved_quantity"`
	Lots      []StockLotDTO       `json:"lots"`
	Plan      *FulfillmentPlanDTO `json:"plan,omitempty"`
}

// NewStockPositionResponse mapea la posición de aplicación a la respuesta HTTP.
func NewStockPositionResponse(p *stock.Position) StockPositionResponse {
	out := StockPositionResponse{
		ProductID: p.ProductID,
		Available: p.Available,
		Reserved:  p.Reserved,
		Lots:      make([]StockLotDTO, 0, len(p.Lots)),
	}
	for _, l := range p.Lots {
		out.Lots = append(out.Lots, StockLotDTO{
			ID:        l.ID,
			Available: l.Available,
			Reserved:  l.Reserved,
			Unit:      l.Unit,
		})
	}
	if p.Plan != nil {
		plan := FulfillmentPlanDTO{
			Method:      string(p.Plan.Method),
			Reservable:  p.Plan.Reservable,
			Shortfall:   p.Plan.Shortfall,
			Allocations: make([]AllocationDTO, 0, len(p.Plan.Allocations)),
		}
		for _, a := range p.Plan.Allocations {
			plan.Allocations = append(plan.Allocations, AllocationDTO{LotID: a.LotID, Quantity: a.Quantity})
		}
		out.Plan = &plan
	}
	return out
}
