package files

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type ShareRequest struct {
	// ExpiresInDays of 0 means the link never expires.
	ExpiresInDays int `json:"expires_in_days"`
}

// Share creates a shareable download link for a file. Owner only.
//
//	@Summary      Share a file
//	@Description  Create an anonymous download link with an unguessable token
//	@Tags         files
//	@Accept       json
//	@Produce      json
//	@Param        file_uuid path string true "File UUID"
//	@Param        request body ShareRequest false "Expiry settings"
//	@Success      200  {object}  map[string]string "Shareable URL"
//	@Failure      403  {string}  string "Access denied"
//	@Failure      404  {string}  string "File not found"
//	@Router       /api/v1/files/{file_uuid}/share [post]
func (h *FilesHandler) Share(w http.ResponseWriter, r *http.Request) {
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

	var data ShareRequest
	if r.Body != nil {
		// Body is optional; a missing or empty body means a permanent link.
		json.NewDecoder(r.Body).Decode(&data)
	}

	var expiresAt *time.Time
	if data.ExpiresInDays > 0 {
		t := time.Now().AddDate(0, 0, data.ExpiresInDays)
		expiresAt = &t
	}

	link, err := database.CreateShareLink(DB, file.ID, expiresAt)
	if err != nil {
		http.Error(w, "Unable to create share link", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"shareable_url": fmt.Sprintf("%s/public/%s", h.PublicBaseURL, link.Token),
	})
}

// RevokeShare deletes a share link by token. Owner only.
//
//	@Summary      Revoke a share link
//	@Description  Invalidate a previously created share token
//	@Tags         files
//	@Param        token path string true "Share token"
//	@Success      200  {string}  string "Share link revoked"
//	@Failure      404  {string}  string "Share link not found"
//	@Router       /api/v1/files/shares/{token} [delete]
func (h *FilesHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	token := r.PathValue("token")

	var link database.ShareLink
	if err := DB.Preload("File").First(&link, "token = ?", token).Error; err != nil {
		http.Error(w, "Share link not found", http.StatusNotFound)
		return
	}

	if link.File.OwnerId != user.ID {
		// Same policy as file lookups: non-owners never learn a token exists.
		http.Error(w, "Share link not found", http.StatusNotFound)
		return
	}

	if err := DB.Delete(&link).Error; err != nil {
		http.Error(w, "Unable to revoke share link", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Share link revoked"))
}

// PublicDownload streams a shared file to an anonymous caller holding a
// valid token. Unknown and expired tokens both yield 404.
//
//	@Summary      Download a shared file
//	@Description  Anonymous download via share token
//	@Tags         files
//	@Produce      octet-stream
//	@Param        token path string true "Share token"
//	@Success      200  {file}  binary
//	@Failure      404  {string}  string "Invalid or expired share link"
//	@Router       /public/{token} [get]
func (h *FilesHandler) PublicDownload(w http.ResponseWriter, r *http.Request) {
	DB, err := util.GetDB(r)
	if err != nil {
		http.Error(w, "Unable to get database", http.StatusInternalServerError)
		return
	}

	token := r.PathValue("token")

	file, err := database.ResolveShareLink(DB, token)
	if err != nil {
		http.Error(w, "Invalid or expired share link", http.StatusNotFound)
		return
	}

	h.serveBlob(w, r, file)
}
