package matching

// AliasTable mapea sinónimos y errores de tipeo frecuentes a la palabra núcleo
// con que el catálogo nombra el producto. Las claves y valores se comparan ya
// normalizados.
type AliasTable map[string]string

// DefaultAliases devuelve la tabla de sinónimos acumulada de los pedidos
// reales de los restaurantes: nombres regionales, nombres en otros idiomas y
// los errores de tipeo que se repiten semana a semana.
func DefaultAliases() AliasTable {
	return AliasTable{
		// sinónimos regionales
		"eggplant":  "aubergine",
		"brinjal":   "aubergine",
		"dhania":    "coriander",
		"cilantro":  "coriander",
		"arugula":   "rocket",
		"zucchini":  "marrow",
		"scallions": "spring",
		"scallion":  "spring",
		"mielie":    "corn",
		"mielies":   "corn",
		"naartjie":  "tangerine",

		// errores de tipeo recurrentes
		"potatoe":  "potato",
		"tomatoe":  "tomato",
		"letuce":   "lettuce",
		"brocolli": "broccoli",
		"avo":      "avocado",
		"avos":     "avocado",
		"mushroom": "mushrooms",
	}
}

// Lookup devuelve las palabras canónicas alcanzables desde la frase de
// producto: primero la frase completa, luego token por token.
func (a AliasTable) Lookup(phrase string, tokens []string) []string {
	var out []string
	if canonical, ok := a[phrase]; ok {
		out = append(out, canonical)
	}
	for _, t := range tokens {
		if canonical, ok := a[t]; ok && canonical != phrase {
			out = append(out, canonical)
		}
	}
	return out
}
