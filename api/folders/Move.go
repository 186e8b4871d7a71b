package folders

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"errors"
	"net/http"
)

type FolderMove struct {
	// ParentUUID of "" moves the folder back to the root.
	ParentUUID string `json:"parent_uuid"`
}

// Move re-parents a folder. The target parent, when given, must be one of the
// caller's own folders and may not sit inside the moved folder's subtree.
//
//	@Summary      Move a folder
//	@Description  Re-parent a folder under another owned folder or the root
//	@Tags         folders
//	@Accept       json
//	@Produce      json
//	@Param        folder_uuid path string true "Folder UUID"
//	@Param        request body FolderMove true "New parent, empty for root"
//	@Success      200  {object}  map[string]database.Folder
//	@Failure      400  {string}  string "Folder cannot be moved into its own subtree"
//	@Failure      404  {string}  string "Folder not found"
//	@Router       /api/v1/folders/{folder_uuid}/move [post]
func (h *FoldersHandler) Move(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	folderUUID := r.PathValue("folder_uuid")

	folder, err := database.GetOwnedFolder(DB, folderUUID, user)
	if err != nil {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}

	var data FolderMove
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := database.MoveFolder(DB, user, folder, data.ParentUUID); err != nil {
		switch {
		case errors.Is(err, database.ErrFolderNotFound):
			http.Error(w, "Parent folder not found", http.StatusNotFound)
		case errors.Is(err, database.ErrFolderCycle):
			http.Error(w, "Folder cannot be moved into its own subtree", http.StatusBadRequest)
		default:
			http.Error(w, "Unable to move folder", http.StatusInternalServerError)
		}
		return
	}

	moved, err := database.GetOwnedFolder(DB, folderUUID, user)
	if err != nil {
		http.Error(w, "Unable to move folder", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]*database.Folder{"folder": moved})
}
