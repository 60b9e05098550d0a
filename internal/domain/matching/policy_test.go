package matching_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/matching"
)

func candidate(id string, score float64) entity.MatchCandidate {
	return entity.MatchCandidate{
		EntryID:        id,
		EntryName:      id,
		TotalScore:     score,
		StrategyScores: map[string]float64{entity.StrategyWordOverlap: score},
	}
}

func TestResolve_TiersPorUmbral(t *testing.T) {
	policy := matching.NewPolicy(matching.DefaultThresholds(), 0)
	line := entity.ParsedLine{RawText: "test"}

	cases := []struct {
		score   float64
		tier    entity.DecisionTier
		hasBest bool
	}{
		{75, entity.TierAuto, true},
		{50, entity.TierAuto, true}, // el corte es inclusivo
		{49.9, entity.TierTopSuggestion, true},
		{25, entity.TierTopSuggestion, true},
		{24.9, entity.TierSuggestionList, false},
		{10, entity.TierSuggestionList, false},
		{9.9, entity.TierNone, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("score=%.1f", tc.score), func(t *testing.T) {
			result := policy.Resolve(line, []entity.MatchCandidate{candidate("a", tc.score)})
			assert.Equal(t, tc.tier, result.Tier)
			assert.Equal(t, tc.hasBest, result.BestMatch != nil,
				"best_match solo existe en auto y top_suggestion")
		})
	}
}

func TestResolve_SinCandidatosEsNone(t *testing.T) {
	policy := matching.NewPolicy(matching.DefaultThresholds(), 0)

	result := policy.Resolve(entity.ParsedLine{RawText: "???"}, nil)

	assert.Equal(t, entity.TierNone, result.Tier, `"sin coincidencia" nunca es un error`)
	assert.Nil(t, result.BestMatch)
	assert.Empty(t, result.Suggestions)
}

func TestResolve_OrdenDescendentePorScore(t *testing.T) {
	policy := matching.NewPolicy(matching.DefaultThresholds(), 0)

	result := policy.Resolve(entity.ParsedLine{}, []entity.MatchCandidate{
		candidate("low", 12),
		candidate("high", 60),
		candidate("mid", 30),
	})

	require.Len(t, result.Suggestions, 3)
	assert.Equal(t, "high", result.Suggestions[0].EntryID)
	assert.Equal(t, "mid", result.Suggestions[1].EntryID)
	assert.Equal(t, "low", result.Suggestions[2].EntryID)
	require.NotNil(t, result.BestMatch)
	assert.Equal(t, "high", result.BestMatch.EntryID)
}

func TestResolve_DesempateDeterminista(t *testing.T) {
	policy := matching.NewPolicy(matching.DefaultThresholds(), 0)

	exact := candidate("zeta", 30)
	exact.StrategyScores = map[string]float64{entity.StrategyExactName: 30}
	withHits := candidate("yanqui", 30)
	withHits.DescriptorHits = 2
	plain := candidate("alfa", 30)

	// mismo score: gana nombre exacto, luego más descriptores, luego nombre menor
	result := policy.Resolve(entity.ParsedLine{}, []entity.MatchCandidate{plain, withHits, exact})

	require.Len(t, result.Suggestions, 3)
	assert.Equal(t, "zeta", result.Suggestions[0].EntryID, "la presencia de nombre exacto gana")
	assert.Equal(t, "yanqui", result.Suggestions[1].EntryID, "luego la cantidad de descriptores")
	assert.Equal(t, "alfa", result.Suggestions[2].EntryID)

	// idéntica entrada en otro orden produce idéntica salida
	again := policy.Resolve(entity.ParsedLine{}, []entity.MatchCandidate{exact, plain, withHits})
	for i := range result.Suggestions {
		assert.Equal(t, result.Suggestions[i].EntryID, again.Suggestions[i].EntryID)
	}
}

func TestResolve_TopeDeSugerencias(t *testing.T) {
	policy := matching.NewPolicy(matching.DefaultThresholds(), 5)

	var candidates []entity.MatchCandidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("c%02d", i), 15))
	}
	result := policy.Resolve(entity.ParsedLine{}, candidates)

	assert.Len(t, result.Suggestions, 5)
	assert.Equal(t, entity.TierSuggestionList, result.Tier)
}

func TestResolve_NoMutaLaEntrada(t *testing.T) {
	policy := matching.NewPolicy(matching.DefaultThresholds(), 0)

	in := []entity.MatchCandidate{candidate("b", 10), candidate("a", 20)}
	_ = policy.Resolve(entity.ParsedLine{}, in)

	assert.Equal(t, "b", in[0].EntryID, "el slice de entrada no se reordena")
}
