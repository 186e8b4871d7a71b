package permissions

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"errors"
	"net/http"
)

type PermissionRevoke struct {
	FileUUID string `json:"file_uuid"`
	UserUUID string `json:"user_uuid"`
}

// Revoke removes a user's permission on one of the caller's files. Revoking
// a permission that does not exist is a no-op.
//
//	@Summary      Revoke a file permission
//	@Description  Delete the permission row for a (file, user) pair
//	@Tags         permissions
//	@Accept       json
//	@Produce      json
//	@Param        request body PermissionRevoke true "File and user"
//	@Success      200  {string}  string "Permission revoked"
//	@Failure      404  {string}  string "File not found"
//	@Failure      404  {string}  string "User not found"
//	@Router       /api/v1/permissions/revoke [post]
func (h *PermissionsHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	var data PermissionRevoke
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
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

	if err := database.RevokeFilePermission(DB, file.ID, grantee.ID); err != nil {
		http.Error(w, "Unable to revoke permission", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Permission revoked"))
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
