package http

import (
	"io"
	"net/http"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/service"
	"bikeshop-backend/internal/storage"
)

// PhotoHandler covers the photo lifecycle: request an upload URL, PUT the
// bytes, attach the confirmed key to a bike or part, and download.
type PhotoHandler struct {
	photoSvc service.PhotoService
	backend  storage.Backend
}

func NewPhotoHandler(photoSvc service.PhotoService, backend storage.Backend) *PhotoHandler {
	return &PhotoHandler{photoSvc: photoSvc, backend: backend}
}

type uploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (h *PhotoHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	key, uploadURL, err := h.photoSvc.GetUploadURL(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "upload_url": uploadURL})
}

// Upload receives the photo bytes for the local storage backend.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeBadRequest(w, "missing key parameter")
		return
	}
	if err := h.backend.Save(key, r.Body); err != nil {
		writeBadRequest(w, "failed to save photo")
		return
	}
	w.WriteHeader(http.StatusOK)
}

type attachPhotoRequest struct {
	ItemType string `json:"item_type"`
	ItemID   int32  `json:"item_id"`
	Key      string `json:"key"`
}

func (h *PhotoHandler) Attach(w http.ResponseWriter, r *http.Request) {
	var req attachPhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	err := h.photoSvc.AttachPhoto(r.Context(), domain.ItemType(req.ItemType), req.ItemID, req.Key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "photo attached"})
}

func (h *PhotoHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeBadRequest(w, "missing key parameter")
		return
	}
	f, err := h.backend.Open(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "photo not found"})
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	io.Copy(w, f)
}
