package files

import (
	"archive/zip"
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"io"
	"log"
	"net/http"
)

type ZipRequest struct {
	FileUUIDs []string `json:"file_uuids"`
}

// DownloadZip streams the requested files as one zip archive. Files the
// caller may not download are silently skipped so the archive only ever
// contains accessible content.
//
//	@Summary      Download files as zip
//	@Description  Stream a zip archive of the requested files
//	@Tags         files
//	@Accept       json
//	@Produce      application/zip
//	@Param        request body ZipRequest true "File UUIDs"
//	@Success      200  {file}  binary
//	@Failure      400  {string}  string "No file IDs provided"
//	@Router       /api/v1/files/zip [post]
func (h *FilesHandler) DownloadZip(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	var data ZipRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(data.FileUUIDs) == 0 {
		http.Error(w, "No file IDs provided", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="files.zip"`)

	archive := zip.NewWriter(w)
	defer archive.Close()

	for _, fileUUID := range data.FileUUIDs {
		file, err := database.GetFileForUser(DB, fileUUID, user,
			database.PermissionDownload, database.PermissionEdit)
		if err != nil {
			continue
		}

		blob, err := h.Blobs.Get(r.Context(), file.StoragePath)
		if err != nil {
			log.Printf("Error reading blob %s for zip: %v", file.StoragePath, err)
			continue
		}

		entry, err := archive.Create(file.Filename)
		if err != nil {
			blob.Close()
			log.Printf("Error creating zip entry for %s: %v", file.Filename, err)
			return
		}
		if _, err := io.Copy(entry, blob); err != nil {
			blob.Close()
			log.Printf("Error writing zip entry for %s: %v", file.Filename, err)
			return
		}
		blob.Close()
	}
}
