package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CatalogEntry representa un producto activo del catálogo de la finca.
// El nombre canónico puede incluir un descriptor de empaque entre paréntesis,
// ej. "Carrots (10kg bag)": el paréntesis nunca forma parte del nombre base.
// Invariantes: nombre canónico único entre entradas activas; BasePrice >= 0.
type CatalogEntry struct {
	ID        string
	Name      string          // nombre canónico, ej. "Rosemary (200g packet)"
	Unit      string          // unidad de venta: kg, each, packet, punnet, box...
	BasePrice decimal.Decimal // costo base por unidad (entrada del motor de precios)
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoreName devuelve el nombre sin el descriptor entre paréntesis.
// "Rosemary (200g packet)" → "Rosemary".
func (e CatalogEntry) CoreName() string {
	if i := strings.Index(e.Name, "("); i >= 0 {
		return strings.TrimSpace(e.Name[:i])
	}
	return strings.TrimSpace(e.Name)
}

// DescriptorText devuelve el contenido del paréntesis del nombre, vacío si no hay.
// "Rosemary (200g packet)" → "200g packet".
func (e CatalogEntry) DescriptorText() string {
	open := strings.Index(e.Name, "(")
	if open < 0 {
		return ""
	}
	close := strings.Index(e.Name[open:], ")")
	if close < 0 {
		return strings.TrimSpace(e.Name[open+1:])
	}
	return strings.TrimSpace(e.Name[open+1 : open+close])
}
