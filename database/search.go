package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrEmptyQuery = errors.New("search query is required")

const (
	MatchFilename = "filename"
	MatchCategory = "category"
	MatchTags     = "tags"
	MatchContent  = "content"
)

type SearchResult struct {
	File
	MatchReason string `json:"match_reason"`
}

// SearchFiles matches the caller's files against a free-text query.
// Filename, extracted text and category match on a case-insensitive
// substring; tags match on an exact element. MatchReason reports the first
// satisfied predicate in that fixed priority order (filename, category,
// tags, content) and is display metadata, not a ranking.
//
// Results are ordered newest-first.
func SearchFiles(DB *gorm.DB, owner *User, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	needle := strings.ToLower(query)

	var files []File
	if err := DB.Where("owner_id = ?", owner.ID).Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}

	results := []SearchResult{}
	for _, file := range files {
		reason, ok := matchFile(&file, needle)
		if !ok {
			continue
		}
		results = append(results, SearchResult{File: file, MatchReason: reason})
	}

	return results, nil
}

func matchFile(file *File, needle string) (string, bool) {
	if strings.Contains(strings.ToLower(file.Filename), needle) {
		return MatchFilename, true
	}
	if strings.Contains(strings.ToLower(file.Category), needle) {
		return MatchCategory, true
	}
	for _, tag := range file.Tags {
		if strings.ToLower(tag) == needle {
			return MatchTags, true
		}
	}
	if file.TextExtract != nil && strings.Contains(strings.ToLower(*file.TextExtract), needle) {
		return MatchContent, true
	}
	return "", false
}
