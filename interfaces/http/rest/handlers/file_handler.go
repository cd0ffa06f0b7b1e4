package handlers

import (
	"io"
	"net/http"
	"strconv"

	"fintrack-backend/application/services"
	"fintrack-backend/pkg/auth"
	"fintrack-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadBytes caps multipart uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// FileHandler serves the attachment storage endpoints.
type FileHandler struct {
	files  *services.FileService
	logger *zap.Logger
}

// NewFileHandler creates a file handler.
func NewFileHandler(files *services.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{files: files, logger: logger}
}

// Info handles GET /api/v1/files, describing the upload surface.
func (h *FileHandler) Info(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, "", map[string]interface{}{
		"supported_types":  h.files.SupportedFileTypes(),
		"max_size_bytes":   maxUploadBytes,
		"upload_field":     "file",
		"preview_supports": []string{"csv"},
	})
}

// Upload handles POST /api/v1/files/upload with a multipart "file" field.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_FILE", "could not parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_FILE", "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_FILE", "could not read upload")
		return
	}

	uploadedBy := ""
	if user, err := auth.GetUserFromContext(r.Context()); err == nil {
		uploadedBy = user.UserID
	}

	result, notified, err := h.files.Upload(r.Context(), header.Filename, content, uploadedBy)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	data := map[string]interface{}{"upload": result}
	if notified != nil {
		data["notification"] = notified
	}
	common.RespondJSON(w, http.StatusCreated, "file uploaded", data)
}

// List handles GET /api/v1/files/objects.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	objects, err := h.files.List(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", map[string]interface{}{
		"objects": objects,
		"count":   len(objects),
	})
}

// Download handles GET /api/v1/files/objects/{key} and streams the object
// back as an attachment.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	content, contentType, err := h.files.Download(r.Context(), key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+services.OriginalFilename(key)+"\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// PresignURL handles GET /api/v1/files/objects/{key}/url.
func (h *FileHandler) PresignURL(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	url, err := h.files.PresignURL(r.Context(), key)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", map[string]string{
		"file_key": key,
		"url":      url,
	})
}

// Preview handles GET /api/v1/files/objects/{key}/preview for CSV objects.
func (h *FileHandler) Preview(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	maxRows := 0
	if raw := r.URL.Query().Get("rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "rows must be a positive integer")
			return
		}
		maxRows = n
	}

	preview, err := h.files.PreviewCSV(r.Context(), key, maxRows)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "", preview)
}

// Delete handles DELETE /api/v1/files/objects/{key}.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.files.Delete(r.Context(), key); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, "file deleted", map[string]string{"file_key": key})
}
