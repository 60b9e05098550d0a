package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de pedido resuelta.
const (
	OrderLineConfirmed = "confirmed"
	OrderLineVoided    = "voided" // anulada: se revirtieron los efectos de stock
)

// OrderLine es la línea de pedido resuelta que se crea al confirmar una
// coincidencia: producto elegido + cantidad + precio calculado + reserva.
type OrderLine struct {
	ID            string
	ProductID     string
	ReservationID string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
	Confidence    float64 // score total del candidato elegido (0 si fue elección manual)
	Method        FulfillmentMethod
	Shortfall     decimal.Decimal // cantidad a procurar cuando Method es procurement_needed
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
