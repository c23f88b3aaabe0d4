// Package storage provides the object store used for both JSON documents and
// binary blobs (templates, images, generated reports).
package storage

import "context"

// ObjectStore is the uniform read/write/list/delete contract over named
// paths. Read of a missing path returns an apperr.KindNotFound error;
// Delete of a missing path succeeds silently.
type ObjectStore interface {
	Write(ctx context.Context, path string, data []byte, contentType string) error
	Read(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}
