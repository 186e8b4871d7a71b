package files

import (
	"backend/database"
	"backend/server/util"
	"encoding/json"
	"errors"
	"net/http"
)

// Search matches the caller's files against a free-text query.
//
//	@Summary      Search files
//	@Description  Substring search over filename, extracted text and category, exact match over tags
//	@Tags         files
//	@Produce      json
//	@Param        q query string true "Search query"
//	@Success      200  {object}  map[string][]database.SearchResult
//	@Failure      400  {string}  string "Search query is required"
//	@Router       /api/v1/files/search [get]
func (h *FilesHandler) Search(w http.ResponseWriter, r *http.Request) {
	DB, user, err := util.GetDBAndUser(r)
	if err != nil {
		http.Error(w, "Unable to get database or user", http.StatusBadRequest)
		return
	}

	results, err := database.SearchFiles(DB, user, r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, database.ErrEmptyQuery) {
			http.Error(w, "Search query is required", http.StatusBadRequest)
			return
		}
		http.Error(w, "Unable to search files", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]database.SearchResult{"results": results})
}
