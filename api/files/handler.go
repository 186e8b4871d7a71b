package files

import (
	"backend/analyzer"
	"backend/storage"
)

type FilesHandler struct {
	Blobs    storage.BlobStore
	Analyzer *analyzer.Analyzer

	// PublicBaseURL prefixes generated share URLs, e.g. "http://localhost:1984".
	PublicBaseURL string
}
