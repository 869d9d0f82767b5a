package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wajihx/News-Article-Classifier/internal/adapter/extract"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/http/handler"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/repository/filesystem"
	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
	"github.com/Wajihx/News-Article-Classifier/internal/inference"
	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// wordTokenizer maps every word to one token
type wordTokenizer struct{}

func (wordTokenizer) Encode(text string) (*service.Encoding, error) {
	n := len(strings.Fields(text)) + 2
	enc := &service.Encoding{IDs: make([]int64, n), AttentionMask: make([]int64, n)}
	for i := range enc.IDs {
		enc.IDs[i] = int64(100 + i)
		enc.AttentionMask[i] = 1
	}
	return enc, nil
}

// sportsModel always favours class 1
type sportsModel struct{}

func (sportsModel) Logits(_ context.Context, _ *service.Encoding) ([]float32, error) {
	return []float32{-1.2, 3.4, 0.1, -0.5}, nil
}
func (sportsModel) Version() string { return "fake-sports" }
func (sportsModel) Close() error    { return nil }

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sports.txt"), []byte("The home side won the cup final"), 0o600))

	registry := extract.NewRegistry()
	classifyUC := usecase.NewClassifyUsecase(usecase.ClassifyDeps{
		Classifier: inference.NewPredictor(wordTokenizer{}, sportsModel{}, 0),
		Extractors: registry,
		Samples:    filesystem.NewSampleRepository(dir, nil),
	})

	return Setup(Deps{Classify: classifyUC})
}

func TestSetup_HealthAndMetrics(t *testing.T) {
	router := setupTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetup_ClassifyEndToEnd(t *testing.T) {
	router := setupTestRouter(t)

	body := bytes.NewBufferString(`{"text":"The striker scored twice in the second half"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "e2e-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "e2e-1", response.Meta.RequestID)

	data := response.Data.(map[string]interface{})
	assert.Equal(t, "Sports", data["label"])
	assert.Equal(t, float64(1), data["label_index"])
	assert.Equal(t, float64(8), data["words_analyzed"])
	assert.Equal(t, "fake-sports", data["model_version"])
	assert.Nil(t, data["classification_id"])
}

func TestSetup_Samples(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/samples/sports.txt/classify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"sample"`)
	assert.Contains(t, w.Body.String(), `"source_name":"sports.txt"`)
}

func TestSetup_HistoryDisabled(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/classifications/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "HISTORY_DISABLED")
}

func TestSetup_UI(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "News Article Classifier")
}
