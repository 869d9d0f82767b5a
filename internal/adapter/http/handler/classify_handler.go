package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

// ClassifyHandler handles article classification requests
type ClassifyHandler struct {
	classifyUC     usecase.ClassifyUsecase
	maxUploadBytes int64
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(classifyUC usecase.ClassifyUsecase, maxUploadBytes int64) *ClassifyHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ClassifyHandler{classifyUC: classifyUC, maxUploadBytes: maxUploadBytes}
}

// LabelsOutput lists the topic classes and the loaded model
type LabelsOutput struct {
	ModelVersion string      `json:"model_version"`
	Labels       interface{} `json:"labels"`
}

// FeedRequest is the body of POST /api/v1/feeds/classify
type FeedRequest struct {
	URL   string `json:"url" binding:"required"`
	Limit int    `json:"limit"`
}

// Labels handles GET /api/v1/labels
func (h *ClassifyHandler) Labels(c *gin.Context) {
	respondSuccess(c, http.StatusOK, LabelsOutput{
		ModelVersion: h.classifyUC.ModelVersion(),
		Labels:       h.classifyUC.Labels(),
	})
}

// Classify handles POST /api/v1/classify
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var input usecase.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.classifyUC.Classify(requestContext(c), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ClassifyUpload handles POST /api/v1/classify/upload
func (h *ClassifyHandler) ClassifyUpload(c *gin.Context) {
	file, ok := h.upload(c)
	if !ok {
		return
	}

	output, err := h.classifyUC.ClassifyDocument(requestContext(c), file.Name, file.ContentType, file.Data)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Extract handles POST /api/v1/extract
func (h *ClassifyHandler) Extract(c *gin.Context) {
	file, ok := h.upload(c)
	if !ok {
		return
	}

	output, err := h.classifyUC.Extract(requestContext(c), file.Name, file.ContentType, file.Data)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

func (h *ClassifyHandler) upload(c *gin.Context) (*upload, bool) {
	file, err := readUpload(c, "file", h.maxUploadBytes)
	switch {
	case err == nil:
		return file, true
	case errors.Is(err, errFileTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, errNoFile):
		HandleInvalidRequest(c, err.Error())
	default:
		HandleUsecaseError(c, err)
	}
	return nil, false
}

// ListSamples handles GET /api/v1/samples
func (h *ClassifyHandler) ListSamples(c *gin.Context) {
	names, err := h.classifyUC.ListSamples(requestContext(c))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"samples": names})
}

// GetSample handles GET /api/v1/samples/:name
func (h *ClassifyHandler) GetSample(c *gin.Context) {
	output, err := h.classifyUC.ReadSample(requestContext(c), c.Param("name"))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ClassifySample handles POST /api/v1/samples/:name/classify
func (h *ClassifyHandler) ClassifySample(c *gin.Context) {
	output, err := h.classifyUC.ClassifySample(requestContext(c), c.Param("name"))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ClassifyFeed handles POST /api/v1/feeds/classify
func (h *ClassifyHandler) ClassifyFeed(c *gin.Context) {
	var req FeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.classifyUC.ClassifyFeed(requestContext(c), req.URL, req.Limit)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetClassification handles GET /api/v1/classifications/:id
func (h *ClassifyHandler) GetClassification(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "classification id")
		return
	}

	output, err := h.classifyUC.GetClassification(requestContext(c), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ListClassifications handles GET /api/v1/classifications
func (h *ClassifyHandler) ListClassifications(c *gin.Context) {
	page := ParsePagination(c)

	output, err := h.classifyUC.ListClassifications(requestContext(c), page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ClassificationStats handles GET /api/v1/classifications/stats
func (h *ClassifyHandler) ClassificationStats(c *gin.Context) {
	counts, err := h.classifyUC.LabelCounts(requestContext(c))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	respondSuccess(c, http.StatusOK, gin.H{"total": total, "by_label": counts})
}
