package folders

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"net/http"
)

// List returns the caller's folders with their files eagerly attached.
//
//	@Summary      List folders
//	@Description  List the caller's folders including contained files
//	@Tags         folders
//	@Produce      json
//	@Success      200  {object}  map[string][]database.Folder
//	@Failure      500  {string}  string "Internal server error"
//	@Router       /api/v1/folders/list [get]
func (h *FoldersHandler) List(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	folders, err := database.ListFolders(DB, user)
	if err != nil {
		http.Error(w, "Unable to list folders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]database.Folder{"folders": folders})
}
