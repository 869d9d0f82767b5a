package entity

import "fmt"

// NumLabels is the number of topic classes the model predicts
const NumLabels = 4

// Class indices of the AG News topics
const (
	LabelWorld    = 0
	LabelSports   = 1
	LabelBusiness = 2
	LabelSciTech  = 3
)

var labelNames = [NumLabels]string{
	LabelWorld:    "World",
	LabelSports:   "Sports",
	LabelBusiness: "Business",
	LabelSciTech:  "Sci/Tech",
}

var labelEmojis = [NumLabels]string{
	LabelWorld:    "🌍",
	LabelSports:   "⚽",
	LabelBusiness: "💼",
	LabelSciTech:  "🔬",
}

// Label is a named topic class
type Label struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// IsValidLabel reports whether index is a key of the label mapping
func IsValidLabel(index int) bool {
	return index >= 0 && index < NumLabels
}

// LabelName returns the human readable name for a class index
func LabelName(index int) (string, error) {
	if !IsValidLabel(index) {
		return "", fmt.Errorf("label index %d out of range [0,%d)", index, NumLabels)
	}
	return labelNames[index], nil
}

// LabelEmoji returns the display emoji for a class index, or "" when out of range
func LabelEmoji(index int) string {
	if !IsValidLabel(index) {
		return ""
	}
	return labelEmojis[index]
}

// Labels returns the full mapping in index order. The returned slice is a copy.
func Labels() []Label {
	labels := make([]Label, NumLabels)
	for i := range labelNames {
		labels[i] = Label{Index: i, Name: labelNames[i], Emoji: labelEmojis[i]}
	}
	return labels
}
