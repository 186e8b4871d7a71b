package files

import (
	"backend/database"
	"backend/server/util"
	"backend/storage"
	"encoding/json"
	"log"
	"net/http"
)

// maxUploadFiles bounds how many files one request may carry.
const maxUploadFiles = 10

type UploadOutcome struct {
	Filename string `json:"filename"`
	FileUUID string `json:"file_uuid,omitempty"`
	Error    string `json:"error,omitempty"`
}

type UploadResponse struct {
	Message string          `json:"message"`
	Files   []UploadOutcome `json:"files"`
}

// Upload stores up to 10 multipart files for the caller.
//
// Files are processed independently: one failing upload neither aborts nor
// hides the others, the response carries a per-file outcome instead.
//
//	@Summary      Upload files
//	@Description  Upload up to 10 files, optionally into a folder
//	@Tags         files
//	@Accept       multipart/form-data
//	@Produce      json
//	@Param        files formData file true "Files to upload (field may repeat)"
//	@Param        folder_uuid formData string false "Target folder"
//	@Success      201  {object}  UploadResponse
//	@Failure      400  {string}  string "No files uploaded"
//	@Failure      404  {string}  string "Folder not found"
//	@Router       /api/v1/files/upload [post]
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	// 100MB in-memory budget; larger parts spill to temp files.
	if err := r.ParseMultipartForm(100 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		http.Error(w, "No files uploaded", http.StatusBadRequest)
		return
	}
	if len(uploads) > maxUploadFiles {
		http.Error(w, "Too many files", http.StatusBadRequest)
		return
	}

	var folderId *uint
	if folderUUID := r.FormValue("folder_uuid"); folderUUID != "" {
		folder, err := database.GetOwnedFolder(DB, folderUUID, user)
		if err != nil {
			http.Error(w, "Folder not found", http.StatusNotFound)
			return
		}
		folderId = &folder.ID
	}

	outcomes := make([]UploadOutcome, 0, len(uploads))
	succeeded := 0

	for _, header := range uploads {
		outcome := UploadOutcome{Filename: header.Filename}

		src, err := header.Open()
		if err != nil {
			outcome.Error = "Unable to read upload"
			outcomes = append(outcomes, outcome)
			continue
		}

		key := storage.NewBlobKey(header.Filename)
		err = h.Blobs.Put(r.Context(), key, src)
		src.Close()
		if err != nil {
			log.Printf("Error storing blob for %s: %v", header.Filename, err)
			outcome.Error = "Unable to store file"
			outcomes = append(outcomes, outcome)
			continue
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		file := database.File{
			Filename:    header.Filename,
			StoragePath: key,
			MimeType:    mimeType,
			Size:        header.Size,
			Tags:        database.TagList{},
			Category:    database.CategoryUnanalyzed,
			OwnerId:     user.ID,
			FolderId:    folderId,
		}

		if err := DB.Create(&file).Error; err != nil {
			// Keep the store and the metadata in sync: no row, no blob.
			if derr := h.Blobs.Delete(r.Context(), key); derr != nil {
				log.Printf("Error removing blob after failed create: %v", derr)
			}
			outcome.Error = "Unable to save file record"
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.FileUUID = file.UUID
		outcomes = append(outcomes, outcome)
		succeeded++
	}

	status := http.StatusCreated
	message := "Files uploaded successfully"
	if succeeded == 0 {
		status = http.StatusInternalServerError
		message = "All uploads failed"
	} else if succeeded < len(uploads) {
		message = "Some uploads failed"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(UploadResponse{Message: message, Files: outcomes})
}
