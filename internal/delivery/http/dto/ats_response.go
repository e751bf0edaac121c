package dto

import "placement-prep/internal/domain/matching"

type ATSCheckResponse struct {
	Score         int      `json:"score"`
	Matched       []string `json:"matched"`
	Missing       []string `json:"missing"`
	Suggestions   []string `json:"suggestions"`
	TotalKeywords int      `json:"totalKeywords"`
}

func NewATSCheckResponse(res matching.KeywordResult) ATSCheckResponse {
	return ATSCheckResponse{
		Score:         res.Score,
		Matched:       nonNil(res.Matched),
		Missing:       nonNil(res.Missing),
		Suggestions:   nonNil(res.Suggestions),
		TotalKeywords: res.TotalKeywords,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
