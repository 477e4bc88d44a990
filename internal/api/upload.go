package api

import (
	"errors"
	"net/http"

	"cobropos/m/internal/upload"
)

const uploadField = "imagen"

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			h.fail(w, r, "uploadImage", "", upload.ErrNoFile)
			return
		}
		respondError(w, http.StatusBadRequest, "no se pudo leer el formulario")
		return
	}
	defer file.Close()

	res, err := h.uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.fail(w, r, "uploadImage", "", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
