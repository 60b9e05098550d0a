package entity

import "github.com/shopspring/decimal"

// ParsedLine es el resultado inmutable de tokenizar una línea de pedido.
// Se crea una por línea de entrada; la cantidad por defecto es 1 cuando
// la línea no trae un número suelto.
type ParsedLine struct {
	RawText          string
	Quantity         decimal.Decimal // número suelto de la línea; 1 si no aparece
	UnitToken        string          // token que coincide con el vocabulario de unidades ("" si no hay)
	ProductTokens    []string        // palabras alfabéticas restantes, en orden
	DescriptorTokens []string        // fragmentos número+unidad distintos de la cantidad, ej. "200g"
}

// ProductPhrase devuelve los tokens de producto unidos como frase normalizada.
func (p ParsedLine) ProductPhrase() string {
	out := ""
	for i, t := range p.ProductTokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
