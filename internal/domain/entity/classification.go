package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Classification is a persisted record of one classified article
type Classification struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Source        Source    `json:"source" gorm:"type:varchar(20);not null;index"`
	SourceName    string    `json:"source_name" gorm:"type:varchar(512)"`
	LabelIndex    int       `json:"label_index" gorm:"not null;index"`
	Label         string    `json:"label" gorm:"type:varchar(20);not null"`
	Confidence    float64   `json:"confidence" gorm:"type:decimal(5,4)"`
	WordsAnalyzed int       `json:"words_analyzed" gorm:"not null"`
	InputWords    int       `json:"input_words" gorm:"not null"`
	InputChars    int       `json:"input_chars" gorm:"not null"`
	TextHash      string    `json:"text_hash" gorm:"type:char(64);not null;index"`
	ModelVersion  string    `json:"model_version" gorm:"type:varchar(100)"`
	LatencyMs     int64     `json:"latency_ms" gorm:"default:0"`
	Cached        bool      `json:"cached" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (Classification) TableName() string {
	return "classifications"
}

// NewClassification builds a record from an article and its prediction
func NewClassification(article *Article, prediction *Prediction, modelVersion string) *Classification {
	return &Classification{
		ID:            uuid.New(),
		Source:        article.Source,
		SourceName:    article.Name,
		LabelIndex:    prediction.LabelIndex,
		Label:         prediction.Label(),
		Confidence:    prediction.Confidence,
		WordsAnalyzed: prediction.WordsAnalyzed(),
		InputWords:    article.WordCount(),
		InputChars:    article.CharCount(),
		TextHash:      HashText(prediction.Text),
		ModelVersion:  modelVersion,
	}
}

// SetTiming records how long the classification took and whether it was served from cache
func (c *Classification) SetTiming(latencyMs int64, cached bool) {
	c.LatencyMs = latencyMs
	c.Cached = cached
}

// HashText returns the hex SHA-256 of text
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
