package entity

// Nombres de estrategia de scoring. Cada estrategia es una función pura e
// independiente; el total es la suma recortada a [0,100].
const (
	StrategyExactName   = "exact_name_match"
	StrategyWordOverlap = "word_overlap_match"
	StrategyUnitMatch   = "unit_match"
	StrategyDescriptor  = "descriptor_match"
	StrategyAlias       = "alias_match"
	StrategyPhonetic    = "phonetic_match"
)

// MatchCandidate es una entrada del catálogo puntuada contra una línea parseada.
// Transitorio: solo se persiste (como parte del audit) cuando se consume el resultado.
type MatchCandidate struct {
	EntryID        string
	EntryName      string             // nombre canónico (para desempate y render)
	StrategyScores map[string]float64 // estrategia → puntos otorgados
	TotalScore     float64            // suma recortada a [0,100]
	MatchedReasons []string           // estrategias que dispararon, en orden de evaluación
	DescriptorHits int                // descriptores coincidentes (criterio de desempate)
}

// HasExactName indica si la estrategia de nombre exacto disparó (primer criterio de desempate).
func (c MatchCandidate) HasExactName() bool {
	return c.StrategyScores[StrategyExactName] > 0
}
