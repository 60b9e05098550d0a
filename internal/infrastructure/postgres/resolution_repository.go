package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/repository"
)

var _ repository.ResolutionRepository = (*ResolutionRepo)(nil)

// ResolutionRepo implementación del puerto ResolutionRepository sobre PostgreSQL (usable con pool o tx).
// Los candidatos se guardan como jsonb: son un desglose de auditoría, no filas consultables.
type ResolutionRepo struct {
	q Querier
}

// NewResolutionRepository construye el adaptador de auditoría de resoluciones. Pasar pool o tx (Querier).
func NewResolutionRepository(q Querier) *ResolutionRepo {
	return &ResolutionRepo{q: q}
}

// Create persiste el resultado de una resolución con su desglose de scores.
func (r *ResolutionRepo) Create(ctx context.Context, result *entity.ResolutionResult) error {
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}
	var bestMatch []byte
	if result.BestMatch != nil {
		bestMatch, err = json.Marshal(result.BestMatch)
		if err != nil {
			return fmt.Errorf("marshal best match: %w", err)
		}
	}
	query := `
		INSERT INTO resolutions (id, raw_text, quantity, unit_token, product_tokens, descriptor_tokens,
		                         best_match, suggestions, decision_tier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		result.ID, result.Line.RawText, result.Line.Quantity, result.Line.UnitToken,
		result.Line.ProductTokens, result.Line.DescriptorTokens,
		bestMatch, suggestions, string(result.Tier), result.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert resolution: %w", err)
	}
	return nil
}

// GetByID obtiene una resolución por ID.
func (r *ResolutionRepo) GetByID(ctx context.Context, id string) (*entity.ResolutionResult, error) {
	query := `
		SELECT id, raw_text, quantity, unit_token, product_tokens, descriptor_tokens,
		       best_match, suggestions, decision_tier, created_at
		FROM resolutions WHERE id = $1`
	var (
		result      entity.ResolutionResult
		tier        string
		bestMatch   []byte
		suggestions []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.Line.RawText, &result.Line.Quantity, &result.Line.UnitToken,
		&result.Line.ProductTokens, &result.Line.DescriptorTokens,
		&bestMatch, &suggestions, &tier, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resolution: %w", err)
	}
	result.Tier = entity.DecisionTier(tier)
	if len(bestMatch) > 0 {
		var best entity.MatchCandidate
		if err := json.Unmarshal(bestMatch, &best); err != nil {
			return nil, fmt.Errorf("unmarshal best match: %w", err)
		}
		result.BestMatch = &best
	}
	if err := json.Unmarshal(suggestions, &result.Suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}
	return &result, nil
}
