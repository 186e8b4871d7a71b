package analyzer

import (
	"backend/database"
	"backend/storage"
	"context"
	"errors"
	"io"

	"gorm.io/gorm"
)

// ErrAnalysisInProgress is returned when another analyze call holds the
// per-file claim.
var ErrAnalysisInProgress = errors.New("analysis already in progress")

// Analyzer runs the content-analysis pipeline: read the blob, resolve the
// real content type, extract text, classify it, and persist the result onto
// the file row. Embedding generation is a deliberate no-op (no backend).
type Analyzer struct {
	Blobs      storage.BlobStore
	Classifier *Classifier
}

func New(blobs storage.BlobStore, classifier *Classifier) *Analyzer {
	return &Analyzer{Blobs: blobs, Classifier: classifier}
}

// AnalyzeFile analyzes one file and returns the refreshed record.
//
// Concurrent calls on the same file serialize through a conditional claim on
// the analyzing column; the loser gets ErrAnalysisInProgress. Re-running is
// idempotent: the stored text, tags and category are fully replaced. If the
// pipeline fails or the context is cancelled before persisting, the prior
// analyzed state is left untouched.
func (a *Analyzer) AnalyzeFile(ctx context.Context, DB *gorm.DB, file *database.File) (*database.File, error) {
	claim := DB.Model(&database.File{}).
		Where("id = ? AND analyzing = ?", file.ID, false).
		Update("analyzing", true)
	if claim.Error != nil {
		return nil, claim.Error
	}
	if claim.RowsAffected == 0 {
		return nil, ErrAnalysisInProgress
	}

	release := func() {
		DB.Model(&database.File{}).Where("id = ?", file.ID).Update("analyzing", false)
	}

	buf, err := a.readBlob(ctx, file.StoragePath)
	if err != nil {
		release()
		return nil, err
	}

	mimeType := file.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = DetectMimeType(buf, file.Filename)
	}

	text := ExtractText(ctx, buf, mimeType)
	result := a.Classifier.Classify(ctx, text)

	if err := ctx.Err(); err != nil {
		release()
		return nil, err
	}

	// Result fields and the claim release land in one update so a crash
	// cannot leave a half-written analysis behind.
	updates := map[string]interface{}{
		"text_extract": text,
		"tags":         database.TagList(result.Tags),
		"category":     result.Category,
		"analyzing":    false,
	}
	if err := DB.Model(&database.File{}).Where("id = ?", file.ID).Updates(updates).Error; err != nil {
		release()
		return nil, err
	}

	var updated database.File
	if err := DB.First(&updated, "id = ?", file.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *Analyzer) readBlob(ctx context.Context, key string) ([]byte, error) {
	r, err := a.Blobs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
