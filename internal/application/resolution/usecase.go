package resolution

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/matching"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/logger"
)

// ResolveLineUseCase ejecuta el pipeline de resolución de una línea:
// parseo → generación de candidatos → scoring → política de decisión.
// Es cómputo puro y acotado sobre el snapshot del índice: muchas líneas
// pueden resolverse en paralelo sin bloqueo alguno. Aquí no se toca stock
// ni precios: la mutación exige tier auto o confirmación humana.
type ResolveLineUseCase struct {
	index     *IndexProvider
	auditRepo repository.ResolutionRepository
	scorer    *matching.Scorer
	policy    *matching.Policy
	log       *logger.Logger
}

// NewResolveLineUseCase construye el caso de uso.
func NewResolveLineUseCase(
	index *IndexProvider,
	auditRepo repository.ResolutionRepository,
	scorer *matching.Scorer,
	policy *matching.Policy,
	log *logger.Logger,
) *ResolveLineUseCase {
	return &ResolveLineUseCase{
		index:     index,
		auditRepo: auditRepo,
		scorer:    scorer,
		policy:    policy,
		log:       log,
	}
}

// ResolveLine resuelve texto crudo a un ResolutionResult y lo persiste como
// auditoría. "Sin coincidencia" no es un error: el resultado sale con tier
// none y el caller ramifica por tier.
func (uc *ResolveLineUseCase) ResolveLine(ctx context.Context, rawText string) (*entity.ResolutionResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, domain.ErrInvalidInput
	}

	idx := uc.index.Current()
	parser := matching.NewParser(idx.Units())
	line := parser.Parse(rawText)

	candidates := idx.CandidatesFor(line.ProductTokens, line.UnitToken, line.DescriptorTokens)
	scored := make([]entity.MatchCandidate, 0, len(candidates))
	for _, cand := range candidates {
		mc := uc.scorer.Score(line, cand)
		if mc.TotalScore > 0 {
			scored = append(scored, mc)
		}
	}

	result := uc.policy.Resolve(line, scored)
	result.ID = uuid.New().String()
	result.CreatedAt = time.Now()

	// en tier auto se procede sin humano: queda el desglose completo en el log
	if result.Tier == entity.TierAuto && result.BestMatch != nil {
		breakdown := zerolog.Dict()
		for strategy, points := range result.BestMatch.StrategyScores {
			breakdown.Float64(strategy, points)
		}
		uc.log.Info().
			Str("resolution_id", result.ID).
			Str("raw_text", rawText).
			Str("entry_id", result.BestMatch.EntryID).
			Str("entry_name", result.BestMatch.EntryName).
			Float64("total_score", result.BestMatch.TotalScore).
			Dict("breakdown", breakdown).
			Msg("línea resuelta automáticamente")
	}

	if err := uc.auditRepo.Create(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetResolution recupera una resolución auditada por id.
func (uc *ResolveLineUseCase) GetResolution(ctx context.Context, id string) (*entity.ResolutionResult, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	res, err := uc.auditRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	return res, nil
}
