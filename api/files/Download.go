package files

import (
	"backend/database"
	"backend/server/util"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Download streams a file's bytes to an authorized caller. The owner always
// may; other users need a download or edit grant.
//
//	@Summary      Download a file
//	@Description  Stream the file's raw bytes
//	@Tags         files
//	@Produce      octet-stream
//	@Param        file_uuid path string true "File UUID"
//	@Success      200  {file}  binary
//	@Failure      403  {string}  string "Access denied"
//	@Failure      404  {string}  string "File not found"
//	@Router       /api/v1/files/{file_uuid} [get]
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	fileUUID := r.PathValue("file_uuid")
	if fileUUID == "" {
		http.Error(w, "File ID required", http.StatusBadRequest)
		return
	}

	file, err := database.GetFileForUser(DB, fileUUID, user,
		database.PermissionDownload, database.PermissionEdit)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	h.serveBlob(w, r, file)
}

func (h *FilesHandler) serveBlob(w http.ResponseWriter, r *http.Request, file *database.File) {
	blob, err := h.Blobs.Get(r.Context(), file.StoragePath)
	if err != nil {
		log.Printf("Error reading blob %s: %v", file.StoragePath, err)
		http.Error(w, "Unable to read file", http.StatusInternalServerError)
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	if file.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", file.Size))
	}

	if _, err := io.Copy(w, blob); err != nil {
		log.Printf("Error streaming blob %s: %v", file.StoragePath, err)
	}
}

func writeAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrForbidden):
		http.Error(w, "Access denied", http.StatusForbidden)
	case errors.Is(err, database.ErrFileNotFound):
		http.Error(w, "File not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
