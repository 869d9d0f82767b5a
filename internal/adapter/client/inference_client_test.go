package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferenceClient_Predict(t *testing.T) {
	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "req-123", r.Header.Get("X-Request-ID"))

			var req PredictRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, []int64{101, 2054, 102}, req.InputIDs)
			assert.Equal(t, []int64{1, 1, 1}, req.AttentionMask)
			assert.Equal(t, "req-123", req.RequestID)

			resp := PredictResponse{
				Logits:       []float32{0.1, 3.2, -1.0, 0.4},
				ModelVersion: "distilbert-agnews-v1",
				RequestID:    "req-123",
			}
			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL+"/", 5*time.Second)
		result, err := client.Predict(context.Background(), &PredictRequest{
			InputIDs:      []int64{101, 2054, 102},
			AttentionMask: []int64{1, 1, 1},
			RequestID:     "req-123",
		})

		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 3.2, -1.0, 0.4}, result.Logits)
		assert.Equal(t, "distilbert-agnews-v1", result.ModelVersion)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte("internal error"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL, 5*time.Second)
		_, err := client.Predict(context.Background(), &PredictRequest{InputIDs: []int64{101}})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "internal error")
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte("not json"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL, 5*time.Second)
		_, err := client.Predict(context.Background(), &PredictRequest{InputIDs: []int64{101}})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})

	t.Run("connection error", func(t *testing.T) {
		client := NewInferenceClient("http://localhost:99999", 1*time.Second)
		_, err := client.Predict(context.Background(), &PredictRequest{InputIDs: []int64{101}})

		assert.Error(t, err)
	})
}

func TestInferenceClient_Health(t *testing.T) {
	t.Run("healthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			assert.Equal(t, "GET", r.Method)

			resp := HealthResponse{
				Status:       "healthy",
				ModelLoaded:  true,
				ModelVersion: "distilbert-agnews-v1",
			}
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL, 5*time.Second)
		result, err := client.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", result.Status)
		assert.True(t, result.ModelLoaded)
		assert.Equal(t, "distilbert-agnews-v1", result.ModelVersion)
	})

	t.Run("unhealthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL, 5*time.Second)
		_, err := client.Health(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}

func TestInferenceClient_Ready(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ready", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL, 5*time.Second)
		assert.NoError(t, client.Ready(context.Background()))
	})

	t.Run("not ready", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL, 5*time.Second)
		err := client.Ready(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not ready")
	})
}
