package files

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"net/http"
)

// List returns all files owned by the caller.
//
//	@Summary      List files
//	@Description  List the caller's files with their metadata
//	@Tags         files
//	@Produce      json
//	@Success      200  {object}  map[string][]database.File
//	@Failure      500  {string}  string "Internal server error"
//	@Router       /api/v1/files/list [get]
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	var files []database.File
	if err := DB.Where("owner_id = ?", user.ID).Order("created_at DESC").Find(&files).Error; err != nil {
		http.Error(w, "Unable to list files", http.StatusInternalServerError)
		return
	}

	for i := range files {
		files[i].AttachFolderUUID(DB)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]database.File{"files": files})
}
