package handler

import (
	"io"
	"net/http"

	"copyshop/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadBytes caps print document uploads at 20 MiB.
const maxUploadBytes = 20 << 20

// UploadHandler handles print document uploads.
type UploadHandler struct {
	service service.PrintService
	logger  zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service service.PrintService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/uploads multipart requests. The document goes
// in the "document" form field; the response carries the fileRef and the
// estimated page count for a subsequent cart print line.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body", h.logger)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "document field is required", h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read document", h.logger)
		return
	}

	mediaType := header.Header.Get("Content-Type")

	result, err := h.service.Upload(r.Context(), header.Filename, mediaType, data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store document", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
