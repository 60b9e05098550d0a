package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FulfillmentMethod describe cómo se satisface una cantidad solicitada desde stock.
type FulfillmentMethod string

const (
	FulfillExact       FulfillmentMethod = "exact_match"        // un solo lote con empaque coincidente, consumido completo
	FulfillCombination FulfillmentMethod = "combination"        // varios lotes del mismo producto sumados
	FulfillPartialUse  FulfillmentMethod = "partial_use"        // fracción de un lote a granel más grande
	FulfillProcurement FulfillmentMethod = "procurement_needed" // el stock no cubre; el faltante va a compras
)

// Estados del ciclo de vida de una reserva (patrón de dos fases).
const (
	ReservationActive    = "active"    // reservado, pendiente de confirmar o liberar
	ReservationConfirmed = "confirmed" // convertida en venta
	ReservationReleased  = "released"  // devuelta al disponible
)

// LotAllocation es la porción de un lote comprometida en una reserva.
type LotAllocation struct {
	LotID    string          `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Reservation agrupa las asignaciones por lote de una línea confirmada.
// Cada lote contribuyente se reserva individualmente (spec de combination).
type Reservation struct {
	ID          string
	ProductID   string
	Quantity    decimal.Decimal // total reservado (puede ser menor a lo pedido si hay faltante)
	Unit        string
	Method      FulfillmentMethod
	Allocations []LotAllocation
	Shortfall   decimal.Decimal // pedido − reservable; > 0 solo con procurement_needed
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
