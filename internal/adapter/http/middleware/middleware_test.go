package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serve runs one request through a router with the given middleware and handler
func serve(method, path string, header http.Header, h gin.HandlerFunc, mw ...gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(mw...)
	router.Handle(method, path, h)

	req := httptest.NewRequest(method, path, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func echoRequestID(c *gin.Context) {
	c.String(http.StatusOK, c.GetString("request_id"))
}

func TestRequestID(t *testing.T) {
	t.Run("generates an id", func(t *testing.T) {
		w := serve(http.MethodGet, "/labels", nil, echoRequestID, RequestID())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		header := http.Header{RequestIDHeader: {"upload-42"}}
		w := serve(http.MethodGet, "/labels", header, echoRequestID, RequestID())

		assert.Equal(t, "upload-42", w.Body.String())
		assert.Equal(t, "upload-42", w.Header().Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		level   zapcore.Level
		message string
	}{
		{name: "success logs info", status: http.StatusOK, level: zapcore.InfoLevel, message: "Request completed"},
		{name: "4xx logs warn", status: http.StatusUnsupportedMediaType, level: zapcore.WarnLevel, message: "Request rejected"},
		{name: "5xx logs error", status: http.StatusInternalServerError, level: zapcore.ErrorLevel, message: "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			header := http.Header{RequestIDHeader: {"req-log"}}

			w := serve(http.MethodPost, "/api/v1/classify", header, func(c *gin.Context) {
				c.Status(tt.status)
			}, RequestID(), Logger(zap.New(core)))

			assert.Equal(t, tt.status, w.Code)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.message, entry.Message)
			fields := entry.ContextMap()
			assert.Equal(t, "req-log", fields["request_id"])
			assert.Equal(t, "/api/v1/classify", fields["path"])
			assert.Equal(t, int64(tt.status), fields["status"])
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		header := http.Header{RequestIDHeader: {"req-panic"}}

		w := serve(http.MethodGet, "/boom", header, func(c *gin.Context) {
			panic("test panic")
		}, RequestID(), Recovery(zap.New(core)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
		assert.Contains(t, w.Body.String(), "req-panic")
		assert.NotContains(t, w.Body.String(), "test panic")
		assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		w := serve(http.MethodGet, "/ok", nil, func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		}, RequestID(), Recovery(zap.NewNop()))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORS(t *testing.T) {
	t.Run("sets allow origin on cross origin request", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "http://newsroom.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
	})

	t.Run("handles OPTIONS preflight", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS())
		router.POST("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req, _ := http.NewRequest("OPTIONS", "/test", nil)
		req.Header.Set("Origin", "http://newsroom.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	})
}
