package cache

import (
	"encoding/json"

	"github.com/arthaset/fundex/internal/domain/search/result"
)

// resultDTO is the wire shape of a cached hit.
type resultDTO struct {
	SchemeCode  string  `json:"scheme_code"`
	Name        string  `json:"name"`
	FundHouse   string  `json:"fund_house"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	FundType    string  `json:"fund_type"`
	NAV         float64 `json:"nav"`
	AUM         float64 `json:"aum"`
	Popularity  float64 `json:"popularity"`

	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`

	Confidence      float64  `json:"confidence,omitempty"`
	HighlightedName string   `json:"highlighted_name,omitempty"`
	MatchedTokens   []string `json:"matched_tokens,omitempty"`
}

func marshalResults(results []result.Result) ([]byte, error) {
	dtos := make([]resultDTO, 0, len(results))
	for i := range results {
		r := &results[i]
		dtos = append(dtos, resultDTO{
			SchemeCode:      r.SchemeCode(),
			Name:            r.Name(),
			FundHouse:       r.FundHouse(),
			Category:        r.Category(),
			SubCategory:     r.SubCategory(),
			FundType:        r.FundType(),
			NAV:             r.NAV(),
			AUM:             r.AUM(),
			Popularity:      r.Popularity(),
			Score:           r.Score(),
			MatchType:       string(r.MatchType()),
			Confidence:      r.Confidence(),
			HighlightedName: r.HighlightedName(),
			MatchedTokens:   r.MatchedTokens(),
		})
	}
	return json.Marshal(dtos)
}

func unmarshalResults(data []byte) ([]result.Result, error) {
	var dtos []resultDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, err
	}
	results := make([]result.Result, 0, len(dtos))
	for _, d := range dtos {
		results = append(results, result.Reconstruct(
			d.SchemeCode, d.Name, d.FundHouse, d.Category, d.SubCategory, d.FundType,
			d.NAV, d.AUM, d.Popularity, d.Score, result.MatchType(d.MatchType),
			d.Confidence, d.HighlightedName, d.MatchedTokens,
		))
	}
	return results, nil
}
