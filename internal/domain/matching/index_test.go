package matching_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/matching"
)

func catalogEntry(id, name, unit string) entity.CatalogEntry {
	return entity.CatalogEntry{
		ID:        id,
		Name:      name,
		Unit:      unit,
		BasePrice: decimal.NewFromInt(10),
		Active:    true,
	}
}

func testCatalog() []entity.CatalogEntry {
	return []entity.CatalogEntry{
		catalogEntry("rosemary", "Rosemary (200g packet)", "packet"),
		catalogEntry("tomatoes", "Tomatoes", "kg"),
		catalogEntry("cherry", "Cherry Tomatoes", "punnet"),
		catalogEntry("cocktail", "Cocktail Tomatoes", "punnet"),
		catalogEntry("broccoli", "Broccoli", "head"),
		catalogEntry("carrots", "Carrots (10kg bag)", "bag"),
	}
}

func TestBuildIndex_DescubreVocabularioDeUnidades(t *testing.T) {
	idx := matching.BuildIndex(testCatalog())

	units := idx.Units()
	// unidades de venta
	for _, u := range []string{"packet", "kg", "punnet", "head", "bag"} {
		assert.Contains(t, units, u, "unidad de venta descubierta")
	}
	// sufijos de fragmentos del paréntesis: "200g" aporta "g", "10kg" aporta "kg"
	assert.Contains(t, units, "g", "sufijo de medida descubierto del descriptor")
}

func TestBuildIndex_IgnoraInactivos(t *testing.T) {
	entries := testCatalog()
	entries[0].Active = false

	idx := matching.BuildIndex(entries)

	assert.Equal(t, len(entries)-1, idx.Size())
	_, ok := idx.Get("rosemary")
	assert.False(t, ok, "las entradas inactivas no se indexan")
}

func TestCandidatesFor_ContencionPorToken(t *testing.T) {
	idx := matching.BuildIndex(testCatalog())

	// "tomatoe" es substring de los tres nombres con "tomatoes"
	out := idx.CandidatesFor([]string{"tomatoe"}, "", nil)

	require.Len(t, out, 3)
	ids := make([]string, 0, 3)
	for _, ie := range out {
		ids = append(ids, ie.Entry.ID)
	}
	assert.ElementsMatch(t, []string{"tomatoes", "cherry", "cocktail"}, ids)
}

func TestCandidatesFor_FallbackBarreTodo(t *testing.T) {
	idx := matching.BuildIndex(testCatalog())

	// "brocoli" no es substring de "broccoli": sin el barrido completo el
	// fallback fonético no tendría material
	out := idx.CandidatesFor([]string{"brocoli"}, "", nil)

	assert.Equal(t, idx.Size(), len(out), "sin contención se barre el catálogo completo")
}

func TestCandidatesFor_FiltroDeUnidadNoVacia(t *testing.T) {
	idx := matching.BuildIndex(testCatalog())

	// el filtro de unidad estrecha cuando deja resultados...
	out := idx.CandidatesFor([]string{"tomatoe"}, "punnet", nil)
	require.Len(t, out, 2)
	for _, ie := range out {
		assert.Equal(t, "punnet", ie.Unit)
	}

	// ...pero nunca vacía el conjunto por sí solo
	out = idx.CandidatesFor([]string{"tomatoe"}, "box", nil)
	assert.Len(t, out, 3, "una unidad sin coincidencias no elimina candidatos")
}

func TestCandidatesFor_DescriptoresEstrechan(t *testing.T) {
	idx := matching.BuildIndex(testCatalog())

	out := idx.CandidatesFor([]string{"rosemary", "carrots"}, "", []string{"200g"})

	require.Len(t, out, 1)
	assert.Equal(t, "rosemary", out[0].Entry.ID)
}

func TestIndexedEntry_NombreNucleoYDescriptores(t *testing.T) {
	idx := matching.BuildIndex(testCatalog())

	ie, ok := idx.Get("rosemary")
	require.True(t, ok)
	assert.Equal(t, "rosemary", ie.CoreName)
	assert.Equal(t, "rosemary 200g packet", ie.FullName)
	assert.True(t, ie.HasDescriptor("200g"))
	assert.True(t, ie.HasDescriptor("packet"))
	assert.False(t, ie.HasDescriptor("500g"))
	assert.True(t, ie.HasToken("rosemary"))
}

func TestCandidatesFor_IndiceVacio(t *testing.T) {
	idx := matching.BuildIndex(nil)

	assert.Nil(t, idx.CandidatesFor([]string{"tomatoes"}, "", nil))
	assert.Equal(t, 0, idx.Size())
}
