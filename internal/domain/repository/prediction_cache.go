package repository

import "context"

// CachedPrediction is the cached outcome of scoring one text with one model version
type CachedPrediction struct {
	LabelIndex int     `json:"label_index"`
	Confidence float64 `json:"confidence"`
}

// PredictionCache stores predictions keyed by the scored text and model version
type PredictionCache interface {
	// Get returns nil without error on a miss
	Get(ctx context.Context, modelVersion, text string) (*CachedPrediction, error)

	Set(ctx context.Context, modelVersion, text string, p *CachedPrediction) error
}
