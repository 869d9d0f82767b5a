package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/service"
)

// requestIDKey is the gin context key set by the request id middleware
const requestIDKey = "request_id"

// Response is the JSON envelope of every API endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta"`
}

// ErrorInfo carries a machine readable code and a user facing message
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo identifies the response
type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// requestID returns the id assigned by middleware, generating one for bare contexts
func requestID(c *gin.Context) string {
	id := c.GetString(requestIDKey)
	if id == "" {
		id = uuid.New().String()
		c.Set(requestIDKey, id)
	}
	return id
}

// requestContext carries the request id into usecase calls
func requestContext(c *gin.Context) context.Context {
	return service.WithRequestID(c.Request.Context(), requestID(c))
}

func newMeta(c *gin.Context) *MetaInfo {
	return &MetaInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID(c),
	}
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data, Meta: newMeta(c)})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Error: &ErrorInfo{Code: code, Message: message},
		Meta:  newMeta(c),
	})
}
