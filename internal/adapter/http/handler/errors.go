package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// EmptyArticlePrompt is shown when no article text was provided
const EmptyArticlePrompt = "Please provide a news article using one of the input methods."

// MapUsecaseError maps usecase errors to HTTP error responses.
// It provides consistent error handling across all handlers.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrEmptyArticle):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "EMPTY_ARTICLE",
			Message:    EmptyArticlePrompt,
		}
	case errors.Is(err, usecase.ErrInvalidRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return ErrorResponse{
			StatusCode: http.StatusUnsupportedMediaType,
			Code:       "UNSUPPORTED_FORMAT",
			Message:    "unsupported file type, upload a PDF, TXT or HTML file",
		}
	case errors.Is(err, usecase.ErrUnreadableDocument):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "UNREADABLE_DOCUMENT",
			Message:    "could not read the document",
		}
	case errors.Is(err, usecase.ErrClassificationNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "classification not found",
		}
	case errors.Is(err, usecase.ErrSampleNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "sample not found",
		}
	case errors.Is(err, usecase.ErrSampleDirMissing), errors.Is(err, usecase.ErrNoSamples):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "SAMPLES_UNAVAILABLE",
			Message:    "no sample files found, please use another input method",
		}
	case errors.Is(err, usecase.ErrHistoryDisabled):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "HISTORY_DISABLED",
			Message:    "classification history is not enabled",
		}
	case errors.Is(err, usecase.ErrFeedUnavailable):
		return ErrorResponse{
			StatusCode: http.StatusBadGateway,
			Code:       "FEED_UNAVAILABLE",
			Message:    "could not fetch the feed",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// It maps the error to an HTTP status and sends a JSON error response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidUUID handles an invalid UUID parameter error.
func HandleInvalidUUID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid "+paramName)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
