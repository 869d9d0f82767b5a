package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

//go:embed templates/index.html
var templateFS embed.FS

// Input methods offered by the page
const (
	MethodPaste  = "paste"
	MethodUpload = "upload"
	MethodSample = "sample"
)

var pageTemplate = template.Must(template.New("index.html").ParseFS(templateFS, "templates/index.html"))

// UIHandler serves the browser page
type UIHandler struct {
	classifyUC     usecase.ClassifyUsecase
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewUIHandler creates a new UI handler
func NewUIHandler(classifyUC usecase.ClassifyUsecase, maxUploadBytes int64, logger *zap.Logger) *UIHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UIHandler{classifyUC: classifyUC, maxUploadBytes: maxUploadBytes, logger: logger}
}

// PageData is rendered by templates/index.html
type PageData struct {
	Method         string
	Text           string
	Samples        []string
	SelectedSample string
	SamplesWarning string
	Info           string
	Error          string
	Result         *usecase.ClassifyOutput
	Labels         []entity.Label
	ModelVersion   string
}

// Index handles GET /
func (h *UIHandler) Index(c *gin.Context) {
	page := h.newPage(c, c.DefaultQuery("method", MethodPaste))
	h.render(c, http.StatusOK, page)
}

// Classify handles POST /classify
func (h *UIHandler) Classify(c *gin.Context) {
	if err := parseLimitedForm(c, h.maxUploadBytes); err != nil {
		page := h.newPage(c, MethodUpload)
		if errors.Is(err, errFileTooLarge) {
			page.Error = "the file is too large"
			h.render(c, http.StatusRequestEntityTooLarge, page)
			return
		}
		page.Error = "could not read the form"
		h.render(c, http.StatusBadRequest, page)
		return
	}

	method := c.DefaultPostForm("method", MethodPaste)
	page := h.newPage(c, method)

	var (
		output *usecase.ClassifyOutput
		err    error
	)
	switch page.Method {
	case MethodUpload:
		file, upErr := readUpload(c, "file", h.maxUploadBytes)
		switch {
		case errors.Is(upErr, errNoFile):
			err = usecase.ErrEmptyArticle
		case errors.Is(upErr, errFileTooLarge):
			page.Error = "the file is too large"
			h.render(c, http.StatusRequestEntityTooLarge, page)
			return
		case upErr != nil:
			page.Error = "could not read the upload"
			h.render(c, http.StatusBadRequest, page)
			return
		default:
			output, err = h.classifyUC.ClassifyDocument(requestContext(c), file.Name, file.ContentType, file.Data)
		}
	case MethodSample:
		page.SelectedSample = c.PostForm("sample")
		if page.SelectedSample == "" {
			err = usecase.ErrEmptyArticle
		} else {
			output, err = h.classifyUC.ClassifySample(requestContext(c), page.SelectedSample)
		}
	default:
		page.Text = c.PostForm("text")
		output, err = h.classifyUC.Classify(requestContext(c), &usecase.ClassifyInput{
			Text:   page.Text,
			Source: string(entity.SourcePaste),
		})
	}

	if err != nil {
		errResp := MapUsecaseError(err)
		if errors.Is(err, usecase.ErrEmptyArticle) {
			page.Info = errResp.Message
			h.render(c, http.StatusOK, page)
			return
		}
		if errResp.StatusCode >= http.StatusInternalServerError {
			h.logger.Error("Classification failed", zap.String("method", page.Method), zap.Error(err))
		}
		page.Error = errResp.Message
		h.render(c, errResp.StatusCode, page)
		return
	}

	page.Result = output
	h.render(c, http.StatusOK, page)
}

func (h *UIHandler) newPage(c *gin.Context, method string) *PageData {
	method = strings.ToLower(strings.TrimSpace(method))
	if method != MethodUpload && method != MethodSample {
		method = MethodPaste
	}

	page := &PageData{
		Method:       method,
		Labels:       h.classifyUC.Labels(),
		ModelVersion: h.classifyUC.ModelVersion(),
	}

	samples, err := h.classifyUC.ListSamples(requestContext(c))
	if err != nil {
		page.SamplesWarning = MapUsecaseError(err).Message
	} else {
		page.Samples = samples
	}
	return page
}

func (h *UIHandler) render(c *gin.Context, status int, page *PageData) {
	c.Render(status, render.HTML{Template: pageTemplate, Name: "index.html", Data: page})
}
