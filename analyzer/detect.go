package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMimeType sniffs the content type from the raw bytes. When sniffing
// yields nothing better than a generic binary type, the file extension is
// tried as a fallback before giving up.
func DetectMimeType(buf []byte, filename string) string {
	mt := mimetype.Detect(buf)
	if mt.String() != "application/octet-stream" {
		return mt.String()
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
		return "image/*"
	case ".txt", ".md", ".csv", ".log":
		return "text/plain"
	}

	return "application/octet-stream"
}
