package folders

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"errors"
	"net/http"
)

type FolderCreate struct {
	Name       string `json:"name"`
	ParentUUID string `json:"parent_uuid"`
}

// Create makes a new folder for the caller. The parent, when given, must be
// one of the caller's own folders.
//
//	@Summary      Create a folder
//	@Description  Create a folder, optionally nested under an owned parent
//	@Tags         folders
//	@Accept       json
//	@Produce      json
//	@Param        request body FolderCreate true "Folder name and optional parent"
//	@Success      200  {object}  map[string]database.Folder
//	@Failure      400  {string}  string "Folder name is required"
//	@Failure      404  {string}  string "Parent folder not found"
//	@Router       /api/v1/folders/create [post]
func (h *FoldersHandler) Create(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	var data FolderCreate
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	folder, err := database.CreateFolder(DB, user, data.Name, data.ParentUUID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrFolderName):
			http.Error(w, "Folder name is required", http.StatusBadRequest)
		case errors.Is(err, database.ErrFolderNotFound):
			http.Error(w, "Parent folder not found", http.StatusNotFound)
		default:
			http.Error(w, "Unable to create folder", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]*database.Folder{"folder": folder})
}
