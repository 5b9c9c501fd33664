package domain

// Prediction is the latest forecast state. Text and GenerationID are nil until
// a generation has completed; IsGenerating is true while one is in flight.
// Only the prediction orchestrator mutates it, under its single-flight guard.
type Prediction struct {
	Text         *string `json:"text"`
	IsGenerating bool    `json:"isGenerating"`
	GenerationID *string `json:"generationID"`
}
