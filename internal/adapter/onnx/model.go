// Package onnx runs an exported sequence-classification model in-process
// through ONNX Runtime.
package onnx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
)

const (
	InputIDs      = "input_ids"
	AttentionMask = "attention_mask"
	OutputLogits  = "logits"
)

var envMu sync.Mutex

// Model is an ONNX Runtime session over model.onnx
type Model struct {
	session *ort.DynamicAdvancedSession
	version string
}

var _ service.Model = (*Model)(nil)

// NewModel initializes the runtime (once per process) and opens a session on path.
// libraryPath overrides the onnxruntime shared library location when set.
func NewModel(path, libraryPath, version string) (*Model, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initEnvironment(libraryPath); err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{InputIDs, AttentionMask},
		[]string{OutputLogits},
		nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create onnx session: %w", err)
	}

	return &Model{session: session, version: version}, nil
}

func initEnvironment(libraryPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("failed to initialize onnxruntime: %w", err)
	}
	return nil
}

// Logits runs one forward pass with batch size 1
func (m *Model) Logits(ctx context.Context, enc *service.Encoding) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if enc.Len() == 0 || len(enc.AttentionMask) != enc.Len() {
		return nil, errors.New("encoding has mismatched or empty inputs")
	}

	shape := ort.NewShape(1, int64(enc.Len()))
	ids, err := ort.NewTensor(shape, enc.IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	defer ids.Destroy()

	mask, err := ort.NewTensor(shape, enc.AttentionMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	defer mask.Destroy()

	outputs := []ort.Value{nil}
	if err := m.session.Run([]ort.Value{ids, mask}, outputs); err != nil {
		return nil, fmt.Errorf("onnx forward pass failed: %w", err)
	}
	defer outputs[0].Destroy()

	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("logits output is not a float32 tensor")
	}
	return firstRow(logits.GetShape(), logits.GetData())
}

// firstRow copies the logits of the single batch entry out of tensor memory
func firstRow(shape ort.Shape, data []float32) ([]float32, error) {
	if len(shape) != 2 || shape[0] != 1 {
		return nil, fmt.Errorf("unexpected logits shape %v", shape)
	}
	if int64(len(data)) != shape[1] {
		return nil, fmt.Errorf("logits shape %v does not match %d values", shape, len(data))
	}
	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}

// Version identifies the checkpoint
func (m *Model) Version() string {
	return m.version
}

// Close destroys the session
func (m *Model) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session = nil
	return err
}

// Shutdown releases the process-wide runtime environment
func Shutdown() error {
	envMu.Lock()
	defer envMu.Unlock()

	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
