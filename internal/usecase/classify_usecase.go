package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
	"github.com/Wajihx/News-Article-Classifier/internal/domain/repository"
	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
	"github.com/Wajihx/News-Article-Classifier/internal/inference"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/metrics"
)

// Error definitions for classify usecase
var (
	ErrEmptyArticle           = errors.New("no article text provided")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrClassificationNotFound = errors.New("classification not found")
	ErrHistoryDisabled        = errors.New("classification history is not enabled")
	ErrFeedUnavailable        = errors.New("feed unavailable")

	ErrUnreadableDocument = service.ErrUnreadableDocument
	ErrUnsupportedFormat  = service.ErrUnsupportedFormat
	ErrSampleDirMissing   = repository.ErrSampleDirMissing
	ErrNoSamples          = repository.ErrNoSamples
	ErrSampleNotFound     = repository.ErrSampleNotFound
)

// Feed limits
const (
	DefaultFeedItems = 10
	MaxFeedItems     = 50
)

// ClassifyInput represents the input for classifying pasted text
type ClassifyInput struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Name   string `json:"name"`
}

// ClassifyOutput represents the result of one classification
type ClassifyOutput struct {
	ClassificationID  *uuid.UUID `json:"classification_id,omitempty"`
	LabelIndex        int        `json:"label_index"`
	Label             string     `json:"label"`
	Emoji             string     `json:"emoji"`
	Confidence        float64    `json:"confidence"`
	ConfidencePercent string     `json:"confidence_percent"`
	WordsAnalyzed     int        `json:"words_analyzed"`
	InputWords        int        `json:"input_words"`
	InputChars        int        `json:"input_chars"`
	Preview           string     `json:"preview"`
	AnalyzedText      string     `json:"analyzed_text"`
	ModelVersion      string     `json:"model_version"`
	LatencyMs         int64      `json:"latency_ms"`
	Cached            bool       `json:"cached"`
	Source            string     `json:"source"`
	SourceName        string     `json:"source_name,omitempty"`
}

// ExtractOutput represents text extracted from a document without classifying it
type ExtractOutput struct {
	Name    string `json:"name"`
	Text    string `json:"text"`
	Words   int    `json:"words"`
	Chars   int    `json:"chars"`
	Preview string `json:"preview"`
}

// FeedItemOutput represents one classified feed entry
type FeedItemOutput struct {
	Title     string          `json:"title"`
	Link      string          `json:"link,omitempty"`
	Published *time.Time      `json:"published,omitempty"`
	Result    *ClassifyOutput `json:"result"`
}

// FeedOutput represents the classified items of a feed
type FeedOutput struct {
	URL   string            `json:"url"`
	Items []*FeedItemOutput `json:"items"`
}

// ClassificationOutput represents a stored classification
type ClassificationOutput struct {
	ID            uuid.UUID `json:"id"`
	Source        string    `json:"source"`
	SourceName    string    `json:"source_name,omitempty"`
	LabelIndex    int       `json:"label_index"`
	Label         string    `json:"label"`
	Confidence    float64   `json:"confidence"`
	WordsAnalyzed int       `json:"words_analyzed"`
	InputWords    int       `json:"input_words"`
	InputChars    int       `json:"input_chars"`
	ModelVersion  string    `json:"model_version"`
	LatencyMs     int64     `json:"latency_ms"`
	Cached        bool      `json:"cached"`
	CreatedAt     string    `json:"created_at"`
}

// ClassificationListOutput represents paginated classification history
type ClassificationListOutput struct {
	Classifications []*ClassificationOutput `json:"classifications"`
	Total           int64                   `json:"total"`
	Limit           int                     `json:"limit"`
	Offset          int                     `json:"offset"`
	HasMore         bool                    `json:"has_more"`
}

// ClassifyUsecase defines the interface for article classification
type ClassifyUsecase interface {
	Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error)
	ClassifyDocument(ctx context.Context, name, contentType string, data []byte) (*ClassifyOutput, error)
	Extract(ctx context.Context, name, contentType string, data []byte) (*ExtractOutput, error)
	ClassifySample(ctx context.Context, name string) (*ClassifyOutput, error)
	ReadSample(ctx context.Context, name string) (*ExtractOutput, error)
	ListSamples(ctx context.Context) ([]string, error)
	ClassifyFeed(ctx context.Context, feedURL string, limit int) (*FeedOutput, error)
	GetClassification(ctx context.Context, id uuid.UUID) (*ClassificationOutput, error)
	ListClassifications(ctx context.Context, limit, offset int) (*ClassificationListOutput, error)
	LabelCounts(ctx context.Context) (map[string]int64, error)
	Labels() []entity.Label
	ModelVersion() string
}

// ClassifyDeps holds the collaborators of the classify usecase.
// Feeds, History and Cache are optional.
type ClassifyDeps struct {
	Classifier service.Classifier
	Extractors service.ExtractorRegistry
	Samples    repository.SampleRepository
	Feeds      service.FeedFetcher
	History    repository.ClassificationRepository
	Cache      repository.PredictionCache
	Logger     *zap.Logger
	// FeedItems is the item count used when a feed request gives no limit
	FeedItems int
}

type classifyUsecase struct {
	classifier service.Classifier
	extractors service.ExtractorRegistry
	samples    repository.SampleRepository
	feeds      service.FeedFetcher
	history    repository.ClassificationRepository
	cache      repository.PredictionCache
	logger     *zap.Logger
	feedItems  int
}

// NewClassifyUsecase creates a new classify usecase
func NewClassifyUsecase(deps ClassifyDeps) ClassifyUsecase {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	feedItems := deps.FeedItems
	if feedItems <= 0 || feedItems > MaxFeedItems {
		feedItems = DefaultFeedItems
	}
	return &classifyUsecase{
		classifier: deps.Classifier,
		extractors: deps.Extractors,
		samples:    deps.Samples,
		feeds:      deps.Feeds,
		history:    deps.History,
		cache:      deps.Cache,
		logger:     logger,
		feedItems:  feedItems,
	}
}

func (u *classifyUsecase) Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error) {
	source := entity.SourcePaste
	if input.Source != "" {
		source = entity.Source(input.Source)
		if !source.IsValid() {
			return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidRequest, input.Source)
		}
	}

	article := entity.NewArticle(input.Text, source, input.Name)
	if article.IsBlank() {
		metrics.ObserveError("empty_article")
		return nil, ErrEmptyArticle
	}

	return u.classifyArticle(ctx, article)
}

func (u *classifyUsecase) classifyArticle(ctx context.Context, article *entity.Article) (*ClassifyOutput, error) {
	start := time.Now()
	version := u.classifier.ModelVersion()
	snippet := inference.TruncateWords(article.Text, u.classifier.WordBudget())

	prediction, cached := u.lookupCache(ctx, version, snippet)
	if prediction == nil {
		var err error
		prediction, err = u.classifier.Classify(ctx, article.Text)
		if err != nil {
			metrics.ObserveError("inference")
			return nil, fmt.Errorf("classification failed: %w", err)
		}
		metrics.ObserveInference(time.Since(start))
		u.storeCache(ctx, version, snippet, prediction)
	}

	record := entity.NewClassification(article, prediction, version)
	record.SetTiming(time.Since(start).Milliseconds(), cached)

	output := toClassifyOutput(article, prediction, record)
	if u.history != nil {
		if err := u.history.Create(ctx, record); err != nil {
			u.logger.Warn("Failed to store classification",
				zap.String("classification_id", record.ID.String()),
				zap.Error(err))
		} else {
			id := record.ID
			output.ClassificationID = &id
		}
	}

	metrics.ObserveClassification(prediction.Label(), string(article.Source), cached)
	u.logger.Debug("Article classified",
		zap.String("label", prediction.Label()),
		zap.Float64("confidence", prediction.Confidence),
		zap.Int("words_analyzed", prediction.WordsAnalyzed()),
		zap.Bool("cached", cached),
		zap.String("source", string(article.Source)))

	return output, nil
}

func (u *classifyUsecase) lookupCache(ctx context.Context, version, snippet string) (*entity.Prediction, bool) {
	if u.cache == nil {
		return nil, false
	}

	hit, err := u.cache.Get(ctx, version, snippet)
	if err != nil {
		u.logger.Warn("Prediction cache lookup failed", zap.Error(err))
		return nil, false
	}
	if hit == nil {
		return nil, false
	}

	prediction, err := entity.NewPrediction(hit.LabelIndex, hit.Confidence, snippet)
	if err != nil {
		u.logger.Warn("Ignoring invalid cached prediction", zap.Error(err))
		return nil, false
	}
	return prediction, true
}

func (u *classifyUsecase) storeCache(ctx context.Context, version, snippet string, p *entity.Prediction) {
	if u.cache == nil {
		return
	}
	err := u.cache.Set(ctx, version, snippet, &repository.CachedPrediction{
		LabelIndex: p.LabelIndex,
		Confidence: p.Confidence,
	})
	if err != nil {
		u.logger.Warn("Failed to cache prediction", zap.Error(err))
	}
}

func (u *classifyUsecase) ClassifyDocument(ctx context.Context, name, contentType string, data []byte) (*ClassifyOutput, error) {
	text, err := u.extract(ctx, name, contentType, data)
	if err != nil {
		return nil, err
	}

	article := entity.NewArticle(text, entity.SourceUpload, name)
	if article.IsBlank() {
		metrics.ObserveError("empty_article")
		return nil, ErrEmptyArticle
	}
	return u.classifyArticle(ctx, article)
}

func (u *classifyUsecase) Extract(ctx context.Context, name, contentType string, data []byte) (*ExtractOutput, error) {
	text, err := u.extract(ctx, name, contentType, data)
	if err != nil {
		return nil, err
	}
	return toExtractOutput(name, text), nil
}

func (u *classifyUsecase) extract(ctx context.Context, name, contentType string, data []byte) (string, error) {
	extractor, err := u.extractors.For(name, contentType)
	if err != nil {
		metrics.ObserveError("unsupported_format")
		return "", fmt.Errorf("%s: %w", name, err)
	}

	text, err := extractor.Extract(ctx, data)
	metrics.ObserveExtraction(formatOf(name, contentType), err)
	if err != nil {
		metrics.ObserveError("unreadable_document")
		if !errors.Is(err, ErrUnreadableDocument) {
			err = fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		return "", err
	}
	return text, nil
}

func (u *classifyUsecase) ClassifySample(ctx context.Context, name string) (*ClassifyOutput, error) {
	text, err := u.readSample(ctx, name)
	if err != nil {
		return nil, err
	}

	article := entity.NewArticle(text, entity.SourceSample, name)
	if article.IsBlank() {
		metrics.ObserveError("empty_article")
		return nil, ErrEmptyArticle
	}
	return u.classifyArticle(ctx, article)
}

func (u *classifyUsecase) ReadSample(ctx context.Context, name string) (*ExtractOutput, error) {
	text, err := u.readSample(ctx, name)
	if err != nil {
		return nil, err
	}
	return toExtractOutput(name, text), nil
}

func (u *classifyUsecase) readSample(ctx context.Context, name string) (string, error) {
	data, err := u.samples.Read(ctx, name)
	if err != nil {
		return "", err
	}
	return u.extract(ctx, name, "", data)
}

func (u *classifyUsecase) ListSamples(ctx context.Context) ([]string, error) {
	return u.samples.List(ctx)
}

func (u *classifyUsecase) ClassifyFeed(ctx context.Context, feedURL string, limit int) (*FeedOutput, error) {
	if u.feeds == nil {
		return nil, ErrFeedUnavailable
	}
	if err := validateFeedURL(feedURL); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = u.feedItems
	}
	if limit > MaxFeedItems {
		limit = MaxFeedItems
	}

	items, err := u.feeds.Fetch(ctx, feedURL, limit)
	if err != nil {
		metrics.ObserveError("feed_unavailable")
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	output := &FeedOutput{URL: feedURL, Items: make([]*FeedItemOutput, 0, len(items))}
	for _, item := range items {
		article := entity.NewArticle(item.Text, entity.SourceFeed, item.Title)
		if article.IsBlank() {
			continue
		}

		result, err := u.classifyArticle(ctx, article)
		if err != nil {
			return nil, err
		}
		output.Items = append(output.Items, &FeedItemOutput{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
			Result:    result,
		})
	}

	return output, nil
}

func validateFeedURL(raw string) error {
	parsed, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: invalid feed url", ErrInvalidRequest)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: feed url must be http or https", ErrInvalidRequest)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: feed url has no host", ErrInvalidRequest)
	}
	return nil
}

func (u *classifyUsecase) GetClassification(ctx context.Context, id uuid.UUID) (*ClassificationOutput, error) {
	if u.history == nil {
		return nil, ErrHistoryDisabled
	}

	record, err := u.history.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrClassificationNotFound
	}

	return toClassificationOutput(record), nil
}

func (u *classifyUsecase) ListClassifications(ctx context.Context, limit, offset int) (*ClassificationListOutput, error) {
	if u.history == nil {
		return nil, ErrHistoryDisabled
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	records, total, err := u.history.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	outputs := make([]*ClassificationOutput, len(records))
	for i, r := range records {
		outputs[i] = toClassificationOutput(r)
	}

	return &ClassificationListOutput{
		Classifications: outputs,
		Total:           total,
		Limit:           limit,
		Offset:          offset,
		HasMore:         int64(offset+limit) < total,
	}, nil
}

func (u *classifyUsecase) LabelCounts(ctx context.Context) (map[string]int64, error) {
	if u.history == nil {
		return nil, ErrHistoryDisabled
	}

	counts, err := u.history.CountByLabel(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range entity.Labels() {
		if _, ok := counts[l.Name]; !ok {
			counts[l.Name] = 0
		}
	}
	return counts, nil
}

func (u *classifyUsecase) Labels() []entity.Label {
	return entity.Labels()
}

func (u *classifyUsecase) ModelVersion() string {
	return u.classifier.ModelVersion()
}

// FormatConfidence renders a probability as a percentage with one decimal
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

func formatOf(name, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return ext
	}
	if contentType != "" {
		return contentType
	}
	return "unknown"
}

func toClassifyOutput(article *entity.Article, p *entity.Prediction, record *entity.Classification) *ClassifyOutput {
	return &ClassifyOutput{
		LabelIndex:        p.LabelIndex,
		Label:             p.Label(),
		Emoji:             entity.LabelEmoji(p.LabelIndex),
		Confidence:        p.Confidence,
		ConfidencePercent: FormatConfidence(p.Confidence),
		WordsAnalyzed:     p.WordsAnalyzed(),
		InputWords:        article.WordCount(),
		InputChars:        article.CharCount(),
		Preview:           article.Preview(),
		AnalyzedText:      p.Text,
		ModelVersion:      record.ModelVersion,
		LatencyMs:         record.LatencyMs,
		Cached:            record.Cached,
		Source:            string(article.Source),
		SourceName:        article.Name,
	}
}

func toExtractOutput(name, text string) *ExtractOutput {
	article := entity.NewArticle(text, entity.SourceUpload, name)
	return &ExtractOutput{
		Name:    name,
		Text:    text,
		Words:   article.WordCount(),
		Chars:   article.CharCount(),
		Preview: article.Preview(),
	}
}

func toClassificationOutput(c *entity.Classification) *ClassificationOutput {
	return &ClassificationOutput{
		ID:            c.ID,
		Source:        string(c.Source),
		SourceName:    c.SourceName,
		LabelIndex:    c.LabelIndex,
		Label:         c.Label,
		Confidence:    c.Confidence,
		WordsAnalyzed: c.WordsAnalyzed,
		InputWords:    c.InputWords,
		InputChars:    c.InputChars,
		ModelVersion:  c.ModelVersion,
		LatencyMs:     c.LatencyMs,
		Cached:        c.Cached,
		CreatedAt:     c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
