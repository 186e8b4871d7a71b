package files

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"log"
	"net/http"
)

type BulkDeleteRequest struct {
	FileUUIDs []string `json:"file_uuids"`
}

type BulkDeleteResponse struct {
	Message string   `json:"message"`
	Count   int64    `json:"count"`
	Deleted []string `json:"deleted"`
}

// BulkDelete removes the caller's files among the requested set. UUIDs the
// caller does not own are ignored rather than failing the batch. Metadata
// rows are deleted first so a failure never leaves rows pointing at missing
// blobs; blob cleanup afterwards is best-effort and a stuck blob is only
// logged.
//
//	@Summary      Bulk delete files
//	@Description  Delete multiple files owned by the caller
//	@Tags         files
//	@Accept       json
//	@Produce      json
//	@Param        request body BulkDeleteRequest true "File UUIDs"
//	@Success      200  {object}  BulkDeleteResponse
//	@Failure      400  {string}  string "No file IDs provided"
//	@Router       /api/v1/files/delete [post]
func (h *FilesHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	var data BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(data.FileUUIDs) == 0 {
		http.Error(w, "No file IDs provided", http.StatusBadRequest)
		return
	}

	var files []database.File
	if err := DB.Where("uuid IN ? AND owner_id = ?", data.FileUUIDs, user.ID).Find(&files).Error; err != nil {
		http.Error(w, "Unable to delete files", http.StatusInternalServerError)
		return
	}

	fileIds := make([]uint, 0, len(files))
	for _, file := range files {
		fileIds = append(fileIds, file.ID)
	}

	count, err := database.DeleteFileRecords(DB, fileIds)
	if err != nil {
		http.Error(w, "Unable to delete files", http.StatusInternalServerError)
		return
	}

	deleted := make([]string, 0, len(files))
	for _, file := range files {
		if err := h.Blobs.Delete(r.Context(), file.StoragePath); err != nil {
			log.Printf("Error deleting blob %s: %v", file.StoragePath, err)
		}
		deleted = append(deleted, file.UUID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BulkDeleteResponse{
		Message: "Files deleted successfully",
		Count:   count,
		Deleted: deleted,
	})
}
