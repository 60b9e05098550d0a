package matching

import (
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// Weights son los puntos por estrategia. Son valores empíricos calibrados
// sobre pedidos reales, por eso viven en configuración y no como constantes.
type Weights struct {
	ExactName     float64 // frase de producto == nombre núcleo
	WordOverlap   float64 // máximo por solapamiento de palabras completas
	UnitMatch     float64 // unidad parseada == unidad del candidato
	DescriptorHit float64 // por cada descriptor encontrado verbatim
	DescriptorCap float64 // tope acumulado de descriptor_match
	AliasMatch    float64 // sinónimo/typo conocido hacia la palabra núcleo
	PhoneticMax   float64 // máximo del fallback fonético, escalado por similitud
}

// DefaultWeights devuelve la calibración vigente.
//
// Restricción: DescriptorHit >= PhoneticMax. El fonético solo corre cuando
// nada más sumó, así que un descriptor acertado lo suprime; si puntuara menos
// que el fallback, añadir un descriptor correcto bajaría el total.
func DefaultWeights() Weights {
	return Weights{
		ExactName:     45,
		WordOverlap:   25,
		UnitMatch:     15,
		DescriptorHit: 15,
		DescriptorCap: 30,
		AliasMatch:    22,
		PhoneticMax:   15,
	}
}

// Scorer aplica las estrategias independientes de matching en orden fijo y
// suma sus puntos. Cada estrategia es una función pura (línea, candidato) →
// puntos; cualquier subconjunto puede disparar.
type Scorer struct {
	weights Weights
	aliases AliasTable
}

// NewScorer construye el scorer con pesos y tabla de alias.
func NewScorer(weights Weights, aliases AliasTable) *Scorer {
	return &Scorer{weights: weights, aliases: aliases}
}

// Score puntúa un candidato contra la línea parseada. El total queda recortado
// a [0,100]. El fonético es solo fallback: corre únicamente cuando ninguna
// otra estrategia sumó puntos.
func (s *Scorer) Score(line entity.ParsedLine, cand IndexedEntry) entity.MatchCandidate {
	out := entity.MatchCandidate{
		EntryID:        cand.Entry.ID,
		EntryName:      cand.Entry.Name,
		StrategyScores: make(map[string]float64),
	}
	phrase := Normalize(line.ProductPhrase())

	record := func(strategy string, points float64) {
		if points <= 0 {
			return
		}
		out.StrategyScores[strategy] = points
		out.MatchedReasons = append(out.MatchedReasons, strategy)
		out.TotalScore += points
	}

	// exact_name_match: la frase completa es el nombre núcleo (sin paréntesis)
	exact := phrase != "" && phrase == cand.CoreName
	if exact {
		record(entity.StrategyExactName, s.weights.ExactName)
	}

	// word_overlap_match: fracción de tokens presentes como palabra completa.
	// Con nombre exacto el solapamiento es total por definición y no suma aparte.
	if !exact && len(line.ProductTokens) > 0 {
		hits := 0
		for _, t := range line.ProductTokens {
			if cand.HasToken(t) {
				hits++
			}
		}
		frac := float64(hits) / float64(len(line.ProductTokens))
		record(entity.StrategyWordOverlap, s.weights.WordOverlap*frac)
	}

	// unit_match: la unidad parseada es la unidad de venta o un contenedor del descriptor
	if line.UnitToken != "" && (cand.Unit == line.UnitToken || cand.HasDescriptor(line.UnitToken)) {
		record(entity.StrategyUnitMatch, s.weights.UnitMatch)
	}

	// descriptor_match: cada fragmento verbatim suma, con tope
	points := 0.0
	for _, d := range line.DescriptorTokens {
		if cand.HasDescriptor(d) {
			out.DescriptorHits++
			points += s.weights.DescriptorHit
		}
	}
	if points > s.weights.DescriptorCap {
		points = s.weights.DescriptorCap
	}
	record(entity.StrategyDescriptor, points)

	// alias_match: sinónimo o typo conocido que aterriza en la palabra núcleo
	for _, canonical := range s.aliases.Lookup(phrase, line.ProductTokens) {
		if hasWord(cand.CoreTokens, canonical) {
			record(entity.StrategyAlias, s.weights.AliasMatch)
			break
		}
	}

	// phonetic_match: solo cuando nada más disparó
	if out.TotalScore == 0 {
		if sim := bestPhoneticSimilarity(line.ProductTokens, cand.CoreTokens); sim > 0 {
			record(entity.StrategyPhonetic, s.weights.PhoneticMax*sim)
		}
	}

	if out.TotalScore > 100 {
		out.TotalScore = 100
	}
	if out.TotalScore < 0 {
		out.TotalScore = 0
	}
	return out
}

func hasWord(words []string, want string) bool {
	for _, w := range words {
		if w == want {
			return true
		}
	}
	return false
}
