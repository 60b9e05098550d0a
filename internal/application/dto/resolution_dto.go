package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JBeggs/fambrifarms-backend-sub000/internal/domain/entity"
)

// ResolveLineRequest entrada para resolver una línea cruda de pedido.
type ResolveLineRequest struct {
	RawText string `json:"raw_text" validate:"required,min=1"`
}

// ParsedLineDTO la línea tokenizada, para que la UI muestre qué se entendió.
type ParsedLineDTO struct {
	RawText          string          `json:"raw_text"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitToken        string          `json:"unit_token,omitempty"`
	ProductTokens    []string        `json:"product_tokens"`
	DescriptorTokens []string        `json:"descriptor_tokens,omitempty"`
}

// MatchCandidateDTO un candidato puntuado con su desglose por estrategia.
type MatchCandidateDTO struct {
	EntryID        string             `json:"entry_id"`
	EntryName      string             `json:"entry_name"`
	TotalScore     float64            `json:"total_score"`
	StrategyScores map[string]float64 `json:"strategy_scores"`
	MatchedReasons []string           `json:"matched_reasons"`
}

// ResolutionResponse salida de resolver una línea. La UI ramifica por
// decision_tier: "best match" contra "elija una de N".
type ResolutionResponse struct {
	ID                   string              `json:"id"`
	ParsedLine           ParsedLineDTO       `json:"parsed_line"`
	DecisionTier         string              `json:"decision_tier"`
	BestMatch            *MatchCandidateDTO  `json:"best_match,omitempty"`
	Suggestions          []MatchCandidateDTO `json:"suggestions"`
	RequiresConfirmation bool                `json:"requires_confirmation"`
	CreatedAt            time.Time           `json:"created_at"`
}

// ConfirmMatchRequest entrada para confirmar la coincidencia elegida.
type ConfirmMatchRequest struct {
	ResolutionID    string          `json:"resolution_id"`
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	Unit            string          `json:"unit"`
	CustomerSegment string          `json:"customer_segment" validate:"required"`
	Confidence      float64         `json:"confidence"`
}

// OrderLineResponse la línea de pedido resuelta.
type OrderLineResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ReservationID string          `json:"reservation_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	Confidence    float64         `json:"confidence"`
	Method        string          `json:"fulfillment_method"`
	Shortfall     decimal.Decimal `json:"shortfall"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewResolutionResponse mapea el resultado de dominio a la respuesta HTTP.
func NewResolutionResponse(r *entity.ResolutionResult) ResolutionResponse {
	out := ResolutionResponse{
		ID: r.ID,
		ParsedLine: ParsedLineDTO{
			RawText:          r.Line.RawText,
			Quantity:         r.Line.Quantity,
			UnitToken:        r.Line.UnitToken,
			ProductTokens:    r.Line.ProductTokens,
			DescriptorTokens: r.Line.DescriptorTokens,
		},
		DecisionTier:         string(r.Tier),
		Suggestions:          make([]MatchCandidateDTO, 0, len(r.Suggestions)),
		RequiresConfirmation: r.Tier != entity.TierAuto,
		CreatedAt:            r.CreatedAt,
	}
	if r.BestMatch != nil {
		bm := newCandidateDTO(*r.BestMatch)
		out.BestMatch = &bm
	}
	for _, s := range r.Suggestions {
		out.Suggestions = append(out.Suggestions, newCandidateDTO(s))
	}
	return out
}

func newCandidateDTO(c entity.MatchCandidate) MatchCandidateDTO {
	return MatchCandidateDTO{
		EntryID:        c.EntryID,
		EntryName:      c.EntryName,
		TotalScore:     c.TotalScore,
		StrategyScores: c.StrategyScores,
		MatchedReasons: c.MatchedReasons,
	}
}

// NewOrderLineResponse mapea la línea de dominio a la respuesta HTTP.
func NewOrderLineResponse(l *entity.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ID:            l.ID,
		ProductID:     l.ProductID,
		ReservationID: l.ReservationID,
		Quantity:      l.Quantity,
		Unit:          l.Unit,
		UnitPrice:     l.UnitPrice,
		LineTotal:     l.LineTotal,
		Confidence:    l.Confidence,
		Method:        string(l.Method),
		Shortfall:     l.Shortfall,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
	}
}
