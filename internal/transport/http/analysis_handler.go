package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "kwlens/internal/errors"
	"kwlens/internal/exporter"
	"kwlens/internal/middleware"
	"kwlens/internal/services"
	api "kwlens/pkg/contracts/api/v1"
	"kwlens/pkg/contracts/domain"
)

// multipartMemory is how much of an upload is held in memory before the
// rest spills to a temporary file
const multipartMemory = 8 << 20

// AnalysisHandler handles keyword sheet uploads
type AnalysisHandler struct {
	service       AnalysisServiceInterface
	validation    *middleware.ValidationMiddleware
	errorHandler  *apierrors.ErrorHandler
	defaults      domain.AnalysisOptions
	defaultFormat exporter.Format
	logger        *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler. defaults supplies the
// text fields and summary sizes a request leaves out.
func NewAnalysisHandler(
	service AnalysisServiceInterface,
	validation *middleware.ValidationMiddleware,
	errorHandler *apierrors.ErrorHandler,
	defaults domain.AnalysisOptions,
	defaultFormat exporter.Format,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		service:       service,
		validation:    validation,
		errorHandler:  errorHandler,
		defaults:      defaults,
		defaultFormat: defaultFormat,
		logger:        logger.With(slog.String("handler", "analysis")),
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.validation.ContentTypeValidator("multipart/form-data"))
	r.Use(h.validation.LimitBody)

	r.Post("/", h.Analyze)
	r.Post("/export", h.Export)

	return r
}

// Analyze handles POST /api/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, _, ok := h.process(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, api.NewAnalysisResponse(result, middleware.GetRequestID(r.Context())))
}

// Export handles POST /api/analysis/export?format=xlsx|csv
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, req, ok := h.process(w, r)
	if !ok {
		return
	}

	format, err := h.exportFormat(r, req)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(api.FieldFormat, err.Error()))
		return
	}

	// Buffer so a failed export still gets a problem response
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), &buf, result, format); err != nil {
		h.errorHandler.HandleError(w, r, h.mapError(err))
		return
	}

	filename := exporter.OutputPath("", result.Source, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export download interrupted", slog.String("error", err.Error()))
	}
}

// process decodes and validates the upload and runs the analysis. On failure
// the problem response has been written and ok is false.
func (h *AnalysisHandler) process(w http.ResponseWriter, r *http.Request) (*domain.AnalysisResult, *api.AnalysisRequest, bool) {
	req, file, err := h.decodeRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, nil, false
	}
	defer file.Close()

	if err := h.validation.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, nil, false
	}

	result, err := h.service.Analyze(r.Context(), req.FileName, file, req.Options(h.defaults))
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapError(err))
		return nil, nil, false
	}

	h.logger.InfoContext(r.Context(), "upload analyzed",
		slog.String("file", req.FileName),
		slog.Int("rows", result.Table.Len()))

	return result, req, true
}

// decodeRequest reads the multipart form into an AnalysisRequest and opens
// the uploaded file.
func (h *AnalysisHandler) decodeRequest(r *http.Request) (*api.AnalysisRequest, multipart.File, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, apierrors.NewWithDetails(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
				"Upload exceeds maximum allowed size", map[string]interface{}{"max_size": maxErr.Limit})
		}
		return nil, nil, apierrors.InvalidRequestWithError(err)
	}

	file, header, err := r.FormFile(api.FieldFile)
	if err != nil {
		return nil, nil, apierrors.ErrMissingUpload
	}

	form := r.MultipartForm.Value
	req := &api.AnalysisRequest{
		FileName:      header.Filename,
		Title:         formString(form, api.FieldTitle),
		Subtitle:      formString(form, api.FieldSubtitle),
		KeywordField:  formString(form, api.FieldKeywordField),
		KeywordField2: formString(form, api.FieldKeywordField2),
		Probe:         formString(form, api.FieldProbe),
	}
	if v := formString(form, api.FieldFormat); v != nil {
		req.Format = *v
	}

	for field, dst := range map[string]**int{
		api.FieldTopKeywordWords:     &req.TopKeywordWords,
		api.FieldTopAppSubtitleWords: &req.TopAppSubtitleWords,
		api.FieldTopUnranked:         &req.TopUnranked,
	} {
		v := formString(form, field)
		if v == nil || *v == "" {
			continue
		}
		n, err := strconv.Atoi(*v)
		if err != nil {
			file.Close()
			return nil, nil, apierrors.ErrValidation(field, field+" must be a whole number")
		}
		*dst = &n
	}

	return req, file, nil
}

// exportFormat picks the query parameter, then the form field, then the
// configured default.
func (h *AnalysisHandler) exportFormat(r *http.Request, req *api.AnalysisRequest) (exporter.Format, error) {
	if q := r.URL.Query().Get(api.FieldFormat); q != "" {
		return exporter.ParseFormat(q)
	}
	if req.Format != "" {
		return exporter.ParseFormat(req.Format)
	}
	return h.defaultFormat, nil
}

// mapError translates request-level failures into API errors. Loader
// failures arrive as *apierrors.AppError and pass through unchanged.
func (h *AnalysisHandler) mapError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apierrors.ErrPayloadTooLarge
	}

	switch {
	case errors.Is(err, services.ErrNoUpload):
		return apierrors.ErrMissingUpload
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.ErrValidation(api.FieldFormat, err.Error())
	}

	return err
}

func formString(form map[string][]string, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
