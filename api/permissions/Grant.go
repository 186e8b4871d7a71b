package permissions

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"net/http"
)

type PermissionGrant struct {
	FileUUID   string `json:"file_uuid"`
	UserUUID   string `json:"user_uuid"`
	Permission string `json:"permission"`
}

func validPermission(level string) bool {
	switch level {
	case database.PermissionView, database.PermissionDownload, database.PermissionEdit:
		return true
	}
	return false
}

// Grant gives another user a permission level on one of the caller's files.
// Granting again overwrites the previous level (upsert).
//
//	@Summary      Grant a file permission
//	@Description  Upsert a permission level for a (file, user) pair
//	@Tags         permissions
//	@Accept       json
//	@Produce      json
//	@Param        request body PermissionGrant true "File, user and level"
//	@Success      200  {string}  string "Permission granted"
//	@Failure      400  {string}  string "Invalid permission type"
//	@Failure      404  {string}  string "File not found"
//	@Failure      404  {string}  string "User not found"
//	@Router       /api/v1/permissions/grant [post]
func (h *PermissionsHandler) Grant(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	var data PermissionGrant
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if !validPermission(data.Permission) {
		http.Error(w, "Invalid permission type", http.StatusBadRequest)
		return
	}

	file, err := database.GetFileForUser(DB, data.FileUUID, user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	var grantee database.User
	if err := DB.First(&grantee, "uuid = ?", data.UserUUID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if err := database.GrantFilePermission(DB, file.ID, grantee.ID, data.Permission); err != nil {
		http.Error(w, "Unable to grant permission", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Permission granted"))
}
