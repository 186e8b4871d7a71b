package folders

import "backend/storage"

type FoldersHandler struct {
	Blobs storage.BlobStore
}
