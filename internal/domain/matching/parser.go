package matching

import (
	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// Parser tokeniza una línea cruda de pedido contra el vocabulario de unidades
// descubierto del catálogo. Nunca falla: toda ambigüedad se resuelve con las
// reglas de defaulting (cantidad 1, tokens restantes como producto).
type Parser struct {
	units map[string]struct{}
}

// NewParser construye un parser con el vocabulario de unidades del índice vigente.
func NewParser(units map[string]struct{}) *Parser {
	return &Parser{units: units}
}

// Parse convierte texto crudo en una ParsedLine inmutable.
//
// Reglas:
//   - el único número suelto (sin sufijo de unidad) es la cantidad; default 1
//   - un token del vocabulario de unidades es el unit_token (el primero gana)
//   - tokens número+sufijo ("200g") que no son la cantidad son descriptores
//   - "x" suelto es separador y se descarta (× y * caen en la normalización)
//   - lo alfabético restante son tokens de producto, en orden
func (p *Parser) Parse(raw string) entity.ParsedLine {
	line := entity.ParsedLine{
		RawText:  raw,
		Quantity: decimal.NewFromInt(1),
	}

	quantitySet := false
	for _, token := range Tokenize(raw) {
		switch {
		case token == "x":
			// separador de cantidad: "2 x tomatoes"

		case IsNumeric(token):
			if !quantitySet {
				if qty, err := decimal.NewFromString(token); err == nil && !qty.IsNegative() {
					line.Quantity = qty
					quantitySet = true
					continue
				}
			}
			// números sueltos extra no tienen interpretación: se descartan

		case isDescriptorToken(token):
			// "2x" es cantidad+separador pegados, no un descriptor
			if number, suffix, _ := SplitNumberSuffix(token); suffix == "x" {
				if !quantitySet {
					if qty, err := decimal.NewFromString(number); err == nil && !qty.IsNegative() {
						line.Quantity = qty
						quantitySet = true
					}
				}
				continue
			}
			line.DescriptorTokens = append(line.DescriptorTokens, token)

		case p.isUnit(token):
			// la primera unidad gana; las demás se descartan para no
			// contaminar los tokens de producto
			if line.UnitToken == "" {
				line.UnitToken = token
			}

		case IsAlphabetic(token):
			line.ProductTokens = append(line.ProductTokens, token)

		default:
			// tokens mixtos raros ("a1") se tratan como producto para no perder señal
			line.ProductTokens = append(line.ProductTokens, token)
		}
	}
	return line
}

func (p *Parser) isUnit(token string) bool {
	_, ok := p.units[token]
	return ok
}

// isDescriptorToken reconoce fragmentos número+unidad ("200g", "2.5kg").
func isDescriptorToken(token string) bool {
	_, _, ok := SplitNumberSuffix(token)
	return ok
}
