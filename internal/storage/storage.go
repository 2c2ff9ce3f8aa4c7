// Package storage holds uploaded print documents and hands back opaque
// references the rest of the system carries around.
package storage

import "context"

// FileStore stores raw document bytes. Save returns an opaque fileRef;
// callers never interpret it beyond passing it back to Open.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Open(ctx context.Context, fileRef string) ([]byte, error)
}
