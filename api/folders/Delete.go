package folders

import (
	"backend/database"
	"backend/server/util"
	"log"
	"net/http"

	"gorm.io/gorm"
)

// Delete removes a folder with all descendant files and subfolders.
//
// Blobs are purged best-effort before the metadata goes; the metadata
// deletion of the whole subtree runs in one transaction.
//
//	@Summary      Delete a folder
//	@Description  Recursively delete a folder, its files and its subfolders
//	@Tags         folders
//	@Param        folder_uuid path string true "Folder UUID"
//	@Success      200  {string}  string "Folder and all contents deleted"
//	@Failure      404  {string}  string "Folder not found"
//	@Router       /api/v1/folders/{folder_uuid} [delete]
func (h *FoldersHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	purge := func(file database.File) {
		if err := h.Blobs.Delete(r.Context(), file.StoragePath); err != nil {
			log.Printf("Error deleting blob %s: %v", file.StoragePath, err)
		}
		if file.ThumbnailPath != nil {
			if err := h.Blobs.Delete(r.Context(), *file.ThumbnailPath); err != nil {
				log.Printf("Error deleting thumbnail %s: %v", *file.ThumbnailPath, err)
			}
		}
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		return database.DeleteFolderTree(tx, user, folder, purge)
	})
	if err != nil {
		log.Printf("Error deleting folder %s: %v", folderUUID, err)
		http.Error(w, "Unable to delete folder", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Folder and all contents deleted"))
}
