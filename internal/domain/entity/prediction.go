package entity

import (
	"fmt"
	"math"
	"strings"
)

// Prediction is the outcome of one forward pass
type Prediction struct {
	LabelIndex int     `json:"label_index"`
	Confidence float64 `json:"confidence"`
	// Text is the word-truncated text actually scored
	Text string `json:"text"`
}

// NewPrediction validates and builds a Prediction
func NewPrediction(labelIndex int, confidence float64, text string) (*Prediction, error) {
	if !IsValidLabel(labelIndex) {
		return nil, fmt.Errorf("label index %d out of range [0,%d)", labelIndex, NumLabels)
	}
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("confidence %v is not a probability", confidence)
	}
	return &Prediction{
		LabelIndex: labelIndex,
		Confidence: confidence,
		Text:       text,
	}, nil
}

// Label returns the name of the predicted class
func (p *Prediction) Label() string {
	name, _ := LabelName(p.LabelIndex)
	return name
}

// WordsAnalyzed returns the number of words in the scored text
func (p *Prediction) WordsAnalyzed() int {
	return len(strings.Fields(p.Text))
}
