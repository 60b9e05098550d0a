package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents elimina marcas diacríticas para que "jalapeño" case con "jalapeno".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// separatorReplacer elimina los símbolos separadores de cantidad (×, x se trata por token, *).
var separatorReplacer = strings.NewReplacer("×", " ", "*", " ", ",", " ", ";", " ")

// Normalize deja una cadena en minúsculas, sin acentos y con espacios colapsados.
// Los paréntesis se vuelven espacios para que el descriptor tokenice igual que el resto.
func Normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = separatorReplacer.Replace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '/':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normaliza y separa en tokens no vacíos.
func Tokenize(input string) []string {
	return strings.Fields(Normalize(input))
}

// IsNumeric indica si el token es un número suelto (entero o decimal).
func IsNumeric(token string) bool {
	if token == "" {
		return false
	}
	dots := 0
	for _, r := range token {
		if r == '.' {
			dots++
			if dots > 1 {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return token != "."
}

// SplitNumberSuffix separa un token tipo "200g" o "2.5kg" en número y sufijo
// alfabético. ok es false si el token no tiene esa forma.
func SplitNumberSuffix(token string) (number, suffix string, ok bool) {
	i := 0
	dots := 0
	for i < len(token) {
		r := token[i]
		if r >= '0' && r <= '9' {
			i++
			continue
		}
		if r == '.' && dots == 0 {
			dots++
			i++
			continue
		}
		break
	}
	if i == 0 || i == len(token) {
		return "", "", false
	}
	suffix = token[i:]
	for _, r := range suffix {
		if r < 'a' || r > 'z' {
			return "", "", false
		}
	}
	return token[:i], suffix, true
}

// IsAlphabetic indica si el token es puramente alfabético.
func IsAlphabetic(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
