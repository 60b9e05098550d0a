package entity

import "time"

// DecisionTier es el nivel de confianza asignado a una línea resuelta.
type DecisionTier string

const (
	TierAuto           DecisionTier = "auto"            // procede sin confirmación humana
	TierTopSuggestion  DecisionTier = "top_suggestion"  // procede solo con confirmación explícita
	TierSuggestionList DecisionTier = "suggestion_list" // el humano elige entre N sugerencias
	TierNone           DecisionTier = "none"            // sin candidatos útiles; creación manual
)

// ResolutionResult es la salida de resolver una línea: nunca es un error
// "sin coincidencia" — el caller ramifica por Tier, no por excepciones.
// Se persiste como auditoría una vez que un caller lo consume.
type ResolutionResult struct {
	ID          string
	Line        ParsedLine
	BestMatch   *MatchCandidate  // nil en suggestion_list y none
	Suggestions []MatchCandidate // ranking descendente, tope configurable (default 20)
	Tier        DecisionTier
	CreatedAt   time.Time
}
