package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/Michaelnacaya1234/Accounting-services/internal/storage"
	"github.com/Michaelnacaya1234/Accounting-services/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type FileStore interface {
	Save(prefix, original string, r io.Reader) (string, error)
	Open(name string) (*os.File, error)
	Remove(name string) error
}

type UploadHandler struct {
	store FileStore
}

func NewUploadHandler(store FileStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Download godoc
// @Summary Скачивание загруженного документа
// @Tags uploads
// @Security ApiKeyAuth
// @Produce octet-stream
// @Param name path string true "Имя файла"
// @Success 200 {file} file
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/admin/uploads/{name} [get]
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	f, err := h.store.Open(name)
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		helpers.Error(w, http.StatusBadRequest, "Invalid file name.")
		return
	case errors.Is(err, storage.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "File not found.")
		return
	case err != nil:
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeContent(w, r, name, st.ModTime(), f)
}
