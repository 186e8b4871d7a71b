package files

import (
	"backend/analyzer"
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Analyze runs the content-analysis pipeline on a file. Owner only.
//
// The endpoint degrades instead of failing: unextractable content and
// classification-backend outages still produce a 200 with fallback fields.
// Only a second analyze racing the first gets an error (409).
//
//	@Summary      Analyze a file
//	@Description  Extract text and classify the file into tags and a category
//	@Tags         files
//	@Produce      json
//	@Param        file_uuid path string true "File UUID"
//	@Success      200  {object}  map[string]database.File
//	@Failure      404  {string}  string "File not found"
//	@Failure      409  {string}  string "Analysis already in progress"
//	@Router       /api/v1/files/{file_uuid}/analyze [post]
func (h *FilesHandler) Analyze(w http.ResponseWriter, r *http.Request) {
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

	updated, err := h.Analyzer.AnalyzeFile(r.Context(), DB, file)
	if err != nil {
		if errors.Is(err, analyzer.ErrAnalysisInProgress) {
			http.Error(w, "Analysis already in progress", http.StatusConflict)
			return
		}
		log.Printf("Error analyzing file %s: %v", file.UUID, err)
		http.Error(w, "Unable to analyze file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]*database.File{"file": updated})
}
