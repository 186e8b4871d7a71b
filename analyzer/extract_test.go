package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMimeType([]byte("%PDF-1.4 fake"), "doc.bin"))
	assert.Equal(t, "text/plain; charset=utf-8", DetectMimeType([]byte("hello world"), "notes"))

	// sniffing fails, extension decides
	junk := []byte{0x00, 0x01, 0x02, 0x03}
	assert.Equal(t, "image/*", DetectMimeType(junk, "photo.JPG"))
	assert.Equal(t, "application/pdf", DetectMimeType(junk, "doc.pdf"))
	assert.Equal(t, "text/plain", DetectMimeType(junk, "notes.log"))
	assert.Equal(t, "application/octet-stream", DetectMimeType(junk, "mystery.xyz"))
}

func TestExtractTextPlain(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "hello world", ExtractText(ctx, []byte("hello world"), "text/plain"))
	assert.Equal(t, "a,b,c", ExtractText(ctx, []byte("a,b,c"), "text/csv"))

	// invalid UTF-8 in a text type yields nothing rather than garbage
	assert.Equal(t, "", ExtractText(ctx, []byte{0xff, 0xfe, 0xfd}, "text/plain"))
}

func TestExtractTextUnsupportedType(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", ExtractText(ctx, []byte("binary stuff"), "application/zip"))
	assert.Equal(t, "", ExtractText(ctx, []byte("binary stuff"), "application/octet-stream"))
}

func TestExtractTextBrokenPDF(t *testing.T) {
	// not a PDF at all; extraction degrades to empty, never panics
	assert.Equal(t, "", ExtractText(context.Background(), []byte("%PDF-1.4 garbage"), "application/pdf"))
}
