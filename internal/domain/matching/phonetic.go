package matching

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// minPhoneticSimilarity descarta parecidos accidentales entre palabras cortas.
const minPhoneticSimilarity = 0.6

// phoneticSimilarity devuelve la similitud [0,1] entre dos palabras combinando
// distancia de edición con el esqueleto consonántico: "brocoli" y "broccoli"
// suenan igual aunque difieran en letras.
func phoneticSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	edit := editSimilarity(a, b)
	if consonantSkeleton(a) == consonantSkeleton(b) && edit < 0.9 {
		return 0.9
	}
	return edit
}

// editSimilarity normaliza la distancia de Levenshtein por el largo mayor.
func editSimilarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// consonantSkeleton reduce una palabra a sus consonantes sin duplicados
// adyacentes, conservando la primera letra: "broccoli" → "brcl".
func consonantSkeleton(word string) string {
	var b strings.Builder
	var last rune
	for i, r := range word {
		if i > 0 && strings.ContainsRune("aeiou", r) {
			last = r
			continue
		}
		if r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}

// bestPhoneticSimilarity devuelve el mejor parecido fonético entre los tokens
// de producto de la línea y las palabras núcleo del candidato, o 0 si ninguno
// supera el umbral mínimo.
func bestPhoneticSimilarity(productTokens, coreTokens []string) float64 {
	best := 0.0
	for _, pt := range productTokens {
		for _, ct := range coreTokens {
			if sim := phoneticSimilarity(pt, ct); sim > best {
				best = sim
			}
		}
	}
	if best < minPhoneticSimilarity {
		return 0
	}
	return best
}
