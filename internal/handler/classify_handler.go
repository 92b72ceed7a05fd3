package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Stewz00/go-phishguard/internal/httputil"
	"github.com/Stewz00/go-phishguard/internal/logging"
	"github.com/Stewz00/go-phishguard/internal/middleware"
	"github.com/Stewz00/go-phishguard/internal/ocr"
	"github.com/Stewz00/go-phishguard/internal/service"
)

// DefaultMaxUploadBytes caps multipart bodies on /classify-image.
const DefaultMaxUploadBytes = 10 << 20

type ClassifyHandler struct {
	classifyService *service.ClassifyService
	maxUploadBytes  int64
}

func NewClassifyHandler(classifyService *service.ClassifyService, maxUploadBytes int64) *ClassifyHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ClassifyHandler{
		classifyService: classifyService,
		maxUploadBytes:  maxUploadBytes,
	}
}

type ClassifyRequest struct {
	Text     string `json:"text"`
	Scenario string `json:"scenario"`
}

// Classify scores typed text
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, httputil.CodeMissingToken, http.StatusUnauthorized)
		return
	}

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	result, err := h.classifyService.ClassifyText(r.Context(), id.UserID, req.Text, req.Scenario)
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			httputil.RespondError(w, httputil.CodeTextIsEmpty, http.StatusBadRequest)
			return
		}
		logging.FromContext(r.Context()).Error("classification failed", "error", err)
		httputil.RespondError(w, httputil.CodeInternal, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// ClassifyImage runs OCR on the multipart "image" field and scores the text
func (h *ClassifyHandler) ClassifyImage(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, httputil.CodeMissingToken, http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, httputil.CodeImageTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		httputil.RespondError(w, httputil.CodeNoImageProvided, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("image")
	if err != nil {
		httputil.RespondError(w, httputil.CodeNoImageProvided, http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.classifyService.ClassifyImage(r.Context(), id.UserID, file, r.FormValue("scenario"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTextFound):
			httputil.RespondError(w, httputil.CodeNoTextFoundInImage, http.StatusBadRequest)
		case errors.Is(err, ocr.ErrImageTooLarge):
			httputil.RespondError(w, httputil.CodeImageTooLarge, http.StatusRequestEntityTooLarge)
		default:
			logging.FromContext(r.Context()).Error("ocr failed", "user_id", id.UserID, "error", err)
			httputil.RespondError(w, httputil.CodeImageProcessingFailed, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// History lists the caller's past classifications, newest first
func (h *ClassifyHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, httputil.CodeMissingToken, http.StatusUnauthorized)
		return
	}

	entries, err := h.classifyService.History(r.Context(), id.UserID, r.URL.Query().Get("scenario"))
	if err != nil {
		logging.FromContext(r.Context()).Error("history lookup failed", "error", err)
		httputil.RespondError(w, httputil.CodeInternal, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, entries, http.StatusOK)
}
