package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Wajihx/News-Article-Classifier/internal/adapter/client"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/onnx"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/tokenizer"
	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/config"
)

// Files expected inside a checkpoint directory
const (
	ConfigFile    = "config.json"
	TokenizerFile = "tokenizer.json"
	ModelFile     = "model.onnx"
)

// ErrCheckpoint is returned when a checkpoint cannot be loaded
var ErrCheckpoint = errors.New("invalid checkpoint")

// CheckpointConfig is the subset of a Hugging Face config.json used here
type CheckpointConfig struct {
	NameOrPath string            `json:"_name_or_path"`
	ModelType  string            `json:"model_type"`
	NumLabels  *int              `json:"num_labels"`
	ID2Label   map[string]string `json:"id2label"`
}

// Version names the checkpoint for cache keys and history records
func (c *CheckpointConfig) Version(dir string) string {
	switch {
	case c.NameOrPath != "":
		return c.NameOrPath
	case c.ModelType != "":
		return c.ModelType + "@" + filepath.Base(dir)
	default:
		return filepath.Base(dir)
	}
}

// ReadCheckpointConfig parses and validates config.json in dir
func ReadCheckpointConfig(dir string) (*CheckpointConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpoint, err)
	}

	var cfg CheckpointConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrCheckpoint, ConfigFile, err)
	}

	if cfg.NumLabels != nil && *cfg.NumLabels != entity.NumLabels {
		return nil, fmt.Errorf("%w: num_labels is %d, want %d", ErrCheckpoint, *cfg.NumLabels, entity.NumLabels)
	}
	if len(cfg.ID2Label) > 0 {
		if len(cfg.ID2Label) != entity.NumLabels {
			return nil, fmt.Errorf("%w: id2label has %d entries, want %d", ErrCheckpoint, len(cfg.ID2Label), entity.NumLabels)
		}
		for i := 0; i < entity.NumLabels; i++ {
			if _, ok := cfg.ID2Label[strconv.Itoa(i)]; !ok {
				return nil, fmt.Errorf("%w: id2label is missing class %d", ErrCheckpoint, i)
			}
		}
	} else if cfg.NumLabels == nil {
		return nil, fmt.Errorf("%w: config declares neither id2label nor num_labels", ErrCheckpoint)
	}

	return &cfg, nil
}

// LoadCheckpoint loads the tokenizer and model described by cfg and returns a ready Predictor
func LoadCheckpoint(ctx context.Context, cfg *config.ModelConfig) (*Predictor, error) {
	ckpt, err := ReadCheckpointConfig(cfg.CheckpointDir)
	if err != nil {
		return nil, err
	}
	version := ckpt.Version(cfg.CheckpointDir)

	tok, err := tokenizer.Load(filepath.Join(cfg.CheckpointDir, TokenizerFile), cfg.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpoint, err)
	}

	var model service.Model
	switch cfg.Backend {
	case config.BackendRemote:
		model, err = client.NewRemoteModel(ctx, client.NewInferenceClient(cfg.RemoteURL, cfg.RemoteTimeout), version)
	case config.BackendONNX, "":
		model, err = onnx.NewModel(filepath.Join(cfg.CheckpointDir, ModelFile), cfg.ONNXLibraryPath, version)
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpoint, err)
	}

	return NewPredictor(tok, model, cfg.WordBudget), nil
}
