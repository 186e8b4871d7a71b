package analyzer

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

// ExtractText pulls plain text out of a blob, dispatched on the resolved
// MIME type. Extraction is best-effort: every failure degrades to an empty
// string, never an error.
//
//   - application/pdf  -> structured text from the PDF stream
//   - image/*          -> OCR over the raw image bytes
//   - text/*           -> the bytes decoded as UTF-8
//   - everything else  -> ""
func ExtractText(ctx context.Context, buf []byte, mimeType string) string {
	switch {
	case mimeType == "application/pdf":
		return extractPDF(buf)
	case strings.HasPrefix(mimeType, "image/"):
		return extractImage(ctx, buf)
	case strings.HasPrefix(mimeType, "text/"):
		if !utf8.Valid(buf) {
			return ""
		}
		return string(buf)
	}
	return ""
}

func extractPDF(buf []byte) (text string) {
	// The pdf library panics on some malformed inputs; a broken PDF is just
	// an unextractable file here.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PDF extraction panicked: %v", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		log.Printf("Error extracting PDF text: %v", err)
		return ""
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		log.Printf("Error extracting PDF text: %v", err)
		return ""
	}

	out, err := io.ReadAll(plain)
	if err != nil {
		return ""
	}
	return string(out)
}

// extractImage runs OCR in its own goroutine so a slow recognition can be
// abandoned when the caller's context expires. An abandoned run leaks the
// goroutine until tesseract returns; the result is discarded either way.
func extractImage(ctx context.Context, buf []byte) string {
	type ocrResult struct {
		text string
		err  error
	}
	done := make(chan ocrResult, 1)

	go func() {
		client := gosseract.NewClient()
		defer client.Close()

		if err := client.SetImageFromBytes(buf); err != nil {
			done <- ocrResult{err: err}
			return
		}
		text, err := client.Text()
		done <- ocrResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Printf("OCR abandoned: %v", ctx.Err())
		return ""
	case res := <-done:
		if res.err != nil {
			log.Printf("Error running OCR: %v", res.err)
			return ""
		}
		return res.text
	}
}
