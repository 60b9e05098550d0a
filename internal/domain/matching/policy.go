package matching

import (
	"sort"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// Thresholds son los cortes de score por nivel de decisión. Empíricos y por
// tanto configurables (validados contra el corpus etiquetado de pedidos).
type Thresholds struct {
	Auto           float64 // >= → procede sin confirmación
	TopSuggestion  float64 // >= → procede con confirmación requerida
	SuggestionList float64 // >= → lista para elección humana
}

// DefaultThresholds devuelve los cortes vigentes 50/25/10.
func DefaultThresholds() Thresholds {
	return Thresholds{Auto: 50, TopSuggestion: 25, SuggestionList: 10}
}

// DefaultMaxSuggestions es el tope por defecto de sugerencias devueltas.
const DefaultMaxSuggestions = 20

// Policy ordena candidatos puntuados y asigna el nivel de decisión.
// Siempre devuelve un resultado: "sin coincidencia" es Tier none, nunca un error.
type Policy struct {
	thresholds     Thresholds
	maxSuggestions int
}

// NewPolicy construye la política. maxSuggestions <= 0 usa el default.
func NewPolicy(thresholds Thresholds, maxSuggestions int) *Policy {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	return &Policy{thresholds: thresholds, maxSuggestions: maxSuggestions}
}

// Resolve ordena descendente con desempate determinista y clasifica por tier.
// Con scores idénticos el orden y el tier son idénticos entre llamadas.
func (p *Policy) Resolve(line entity.ParsedLine, candidates []entity.MatchCandidate) entity.ResolutionResult {
	ranked := make([]entity.MatchCandidate, len(candidates))
	copy(ranked, candidates)
	sort.Slice(ranked, func(i, j int) bool { return less(ranked[j], ranked[i]) })

	result := entity.ResolutionResult{Line: line, Tier: entity.TierNone}
	if len(ranked) == 0 {
		return result
	}

	top := ranked[0]
	suggestions := ranked
	if len(suggestions) > p.maxSuggestions {
		suggestions = suggestions[:p.maxSuggestions]
	}

	switch {
	case top.TotalScore >= p.thresholds.Auto:
		result.Tier = entity.TierAuto
		result.BestMatch = &top
		result.Suggestions = suggestions
	case top.TotalScore >= p.thresholds.TopSuggestion:
		result.Tier = entity.TierTopSuggestion
		result.BestMatch = &top
		result.Suggestions = suggestions
	case top.TotalScore >= p.thresholds.SuggestionList:
		result.Tier = entity.TierSuggestionList
		result.Suggestions = suggestions
	default:
		// score marginal: resultado vacío, el caller decide manualmente
	}
	return result
}

// less define el orden total de candidatos: score, presencia de nombre exacto,
// cantidad de descriptores coincidentes y nombre canónico menor.
func less(a, b entity.MatchCandidate) bool {
	if a.TotalScore != b.TotalScore {
		return a.TotalScore < b.TotalScore
	}
	if a.HasExactName() != b.HasExactName() {
		return !a.HasExactName()
	}
	if a.DescriptorHits != b.DescriptorHits {
		return a.DescriptorHits < b.DescriptorHits
	}
	return a.EntryName > b.EntryName
}
