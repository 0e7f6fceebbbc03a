package repositories

import (
	"context"
	"io"
)

//go:generate mockgen -source=document_storage.go -destination=mocks/mock_document_storage.go -package=mock_repositories

// DocumentStorage stores document bytes outside the tracker. The tracker keeps only the key and a
// download URL. Implementations wrap retryable failures with apperrors.ErrTransient.
type DocumentStorage interface {
	// Put stores content under key. It must honour ctx cancellation.
	Put(ctx context.Context, key string, content io.Reader, contentType string) (int64, error)

	// Delete removes a stored object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DownloadURL returns the reference clients use to fetch the object.
	DownloadURL(key string) string
}
