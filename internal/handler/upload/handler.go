package upload

import (
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	uploadservice "github.com/lukemarsh/sentichat/internal/service/upload"
	"github.com/lukemarsh/sentichat/pkg/utils"
)

// maxUploadMemory bounds the multipart buffer, not the file size: content
// is deliberately unrestricted in type and size, matching the permissive
// upload contract.
const maxUploadMemory = 32 << 20

// Handler accepts file uploads and returns their public URLs.
type Handler struct {
	store *uploadservice.Store
}

// New creates the upload handler.
func New(store *uploadservice.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers upload routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[upload] read failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	fileURL, err := h.store.Save(data, header.Filename)
	if err != nil {
		// The cause stays in the log; the client gets a generic failure
		// without filesystem internals.
		log.Printf("[upload] save failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"fileUrl": fileURL})
}
