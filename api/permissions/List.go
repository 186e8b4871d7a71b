package permissions

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"net/http"
)

// List returns all permissions granted on one of the caller's files,
// including the grantee's user details.
//
//	@Summary      List file permissions
//	@Description  List all grants on a file with user details
//	@Tags         permissions
//	@Produce      json
//	@Param        file_uuid path string true "File UUID"
//	@Success      200  {object}  map[string][]database.FilePermission
//	@Failure      404  {string}  string "File not found"
//	@Router       /api/v1/permissions/{file_uuid} [get]
func (h *PermissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	fileUUID := r.PathValue("file_uuid")

	file, err := database.GetFileForUser(DB, fileUUID, user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	permissions, err := database.ListFilePermissions(DB, file.ID)
	if err != nil {
		http.Error(w, "Unable to list permissions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]database.FilePermission{"permissions": permissions})
}
