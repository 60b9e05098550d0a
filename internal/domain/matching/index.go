package matching

import (
	"strings"
	"time"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// maxScanFallback limita el barrido completo cuando ningún token de producto
// produce candidatos por contención (catálogos grandes).
const maxScanFallback = 1500

// IndexedEntry es una entrada del catálogo preparada para matching: nombre
// normalizado, tokens y vocabulario de descriptores derivados del paréntesis.
type IndexedEntry struct {
	Entry       entity.CatalogEntry
	CoreName    string // nombre normalizado sin el paréntesis: "rosemary"
	FullName    string // nombre normalizado completo: "rosemary 200g packet"
	CoreTokens  []string
	Unit        string              // unidad de venta normalizada
	Descriptors map[string]struct{} // tokens del paréntesis: {"200g","packet"}

	tokenSet map[string]struct{} // tokens del nombre completo, para overlap por palabra
}

// HasToken indica si word aparece como palabra completa en el nombre del candidato.
func (e IndexedEntry) HasToken(word string) bool {
	_, ok := e.tokenSet[word]
	return ok
}

// HasDescriptor indica si el fragmento aparece verbatim en los descriptores base.
func (e IndexedEntry) HasDescriptor(fragment string) bool {
	_, ok := e.Descriptors[fragment]
	return ok
}

// Index es la vista inmutable del catálogo activo más los vocabularios
// derivados. Se reconstruye periódicamente y se intercambia de forma atómica:
// los lectores ven siempre un snapshot completo, nunca uno parcial.
type Index struct {
	entries []IndexedEntry
	byID    map[string]int
	units   map[string]struct{}
	builtAt time.Time
}

// BuildIndex prepara el índice desde las entradas activas del catálogo.
// El vocabulario de unidades se descubre de los datos (unidades de venta,
// contenedores del paréntesis y sufijos de fragmentos tipo "200g"), nunca se hardcodea.
func BuildIndex(entries []entity.CatalogEntry) *Index {
	idx := &Index{
		byID:    make(map[string]int),
		units:   make(map[string]struct{}),
		builtAt: time.Now(),
	}

	for _, e := range entries {
		if !e.Active {
			continue
		}
		ie := IndexedEntry{
			Entry:       e,
			CoreName:    Normalize(e.CoreName()),
			FullName:    Normalize(e.Name),
			Unit:        Normalize(e.Unit),
			Descriptors: make(map[string]struct{}),
			tokenSet:    make(map[string]struct{}),
		}
		ie.CoreTokens = strings.Fields(ie.CoreName)
		for _, tok := range strings.Fields(ie.FullName) {
			ie.tokenSet[tok] = struct{}{}
		}
		for _, tok := range Tokenize(e.DescriptorText()) {
			ie.Descriptors[tok] = struct{}{}
			switch {
			case IsAlphabetic(tok):
				// contenedores: bag, packet, punnet, tray...
				idx.units[tok] = struct{}{}
			default:
				if _, suffix, ok := SplitNumberSuffix(tok); ok {
					// sufijos de medida: "200g" aporta "g", "10kg" aporta "kg"
					idx.units[suffix] = struct{}{}
				}
			}
		}
		if ie.Unit != "" {
			idx.units[ie.Unit] = struct{}{}
		}
		idx.byID[e.ID] = len(idx.entries)
		idx.entries = append(idx.entries, ie)
	}
	return idx
}

// Units devuelve el vocabulario de unidades descubierto.
func (idx *Index) Units() map[string]struct{} { return idx.units }

// Size devuelve cuántas entradas activas contiene el snapshot.
func (idx *Index) Size() int { return len(idx.entries) }

// BuiltAt devuelve cuándo se construyó el snapshot.
func (idx *Index) BuiltAt() time.Time { return idx.builtAt }

// Get devuelve la entrada indexada por id de catálogo.
func (idx *Index) Get(entryID string) (IndexedEntry, bool) {
	i, ok := idx.byID[entryID]
	if !ok {
		return IndexedEntry{}, false
	}
	return idx.entries[i], true
}

// CandidatesFor arma el conjunto de candidatos para los tokens parseados.
//
// Cada token de producto se combina con OR como prueba de contención sobre el
// nombre normalizado. Los filtros de unidad y descriptor solo estrechan el
// conjunto cuando dejan al menos un resultado: nunca lo vacían por sí solos.
// Si ningún token produce candidatos, se barre el catálogo completo (acotado)
// para que el fallback fonético aún tenga material ("brocoli" → "Broccoli").
func (idx *Index) CandidatesFor(productTokens []string, unit string, descriptorTokens []string) []IndexedEntry {
	if len(idx.entries) == 0 {
		return nil
	}

	var out []IndexedEntry
	seen := make(map[string]struct{})
	for _, token := range productTokens {
		for _, ie := range idx.entries {
			if _, dup := seen[ie.Entry.ID]; dup {
				continue
			}
			if strings.Contains(ie.FullName, token) {
				seen[ie.Entry.ID] = struct{}{}
				out = append(out, ie)
			}
		}
	}

	if len(out) == 0 {
		limit := len(idx.entries)
		if limit > maxScanFallback {
			limit = maxScanFallback
		}
		out = append(out, idx.entries[:limit]...)
	}

	if unit != "" {
		if filtered := filterByUnit(out, unit); len(filtered) > 0 {
			out = filtered
		}
	}
	if len(descriptorTokens) > 0 {
		if narrowed := narrowByDescriptors(out, descriptorTokens); len(narrowed) > 0 {
			out = narrowed
		}
	}
	return out
}

// filterByUnit conserva entradas cuya unidad coincide o cuyos descriptores
// nombran un contenedor compatible ("packet" dentro de "(200g packet)").
func filterByUnit(entries []IndexedEntry, unit string) []IndexedEntry {
	var out []IndexedEntry
	for _, ie := range entries {
		if ie.Unit == unit || ie.HasDescriptor(unit) {
			out = append(out, ie)
		}
	}
	return out
}

// narrowByDescriptors conserva entradas cuyo set de descriptores interseca
// los tokens descriptores de la línea.
func narrowByDescriptors(entries []IndexedEntry, descriptorTokens []string) []IndexedEntry {
	var out []IndexedEntry
	for _, ie := range entries {
		for _, d := range descriptorTokens {
			if ie.HasDescriptor(d) {
				out = append(out, ie)
				break
			}
		}
	}
	return out
}
