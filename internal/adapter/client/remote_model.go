package client

import (
	"context"
	"fmt"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
)

// RemoteModel adapts InferenceClient to the Model interface
type RemoteModel struct {
	client  *InferenceClient
	version string
}

var _ service.Model = (*RemoteModel)(nil)

// NewRemoteModel waits for the sidecar to report ready and records its model version.
// fallbackVersion is used when the sidecar does not report one.
func NewRemoteModel(ctx context.Context, client *InferenceClient, fallbackVersion string) (*RemoteModel, error) {
	if err := client.Ready(ctx); err != nil {
		return nil, err
	}

	version := fallbackVersion
	health, err := client.Health(ctx)
	if err != nil {
		return nil, err
	}
	if health.ModelVersion != "" {
		version = health.ModelVersion
	}

	return &RemoteModel{client: client, version: version}, nil
}

// Logits sends the encoding to the sidecar
func (m *RemoteModel) Logits(ctx context.Context, enc *service.Encoding) ([]float32, error) {
	resp, err := m.client.Predict(ctx, &PredictRequest{
		InputIDs:      enc.IDs,
		AttentionMask: enc.AttentionMask,
		RequestID:     service.RequestIDFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	if resp.ModelVersion != "" && resp.ModelVersion != m.version {
		return nil, fmt.Errorf("model version changed from %s to %s", m.version, resp.ModelVersion)
	}
	return resp.Logits, nil
}

// Version returns the sidecar's model version
func (m *RemoteModel) Version() string {
	return m.version
}

// Close is a no-op; the sidecar owns the model
func (m *RemoteModel) Close() error {
	return nil
}
