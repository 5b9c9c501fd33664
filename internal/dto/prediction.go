package dto

import "github.com/mpopesco/investfolio/internal/core/domain"

// PredictionResponse is the API representation of the forecast state.
type PredictionResponse struct {
	Text         *string `json:"text"`
	IsGenerating bool    `json:"isGenerating"`
	GenerationID *string `json:"generationID"`
}

// ToPredictionResponse converts a domain.Prediction to its API representation.
func ToPredictionResponse(p domain.Prediction) PredictionResponse {
	return PredictionResponse{
		Text:         p.Text,
		IsGenerating: p.IsGenerating,
		GenerationID: p.GenerationID,
	}
}
