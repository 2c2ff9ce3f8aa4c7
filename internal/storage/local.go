package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// localStore implements FileStore on the local file system.
type localStore struct {
	root   string
	logger zerolog.Logger
}

// NewLocalStore creates a file-system-backed document store rooted at root.
func NewLocalStore(root string, logger zerolog.Logger) (FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &localStore{
		root:   root,
		logger: logger.With().Str("component", "local-file-store").Logger(),
	}, nil
}

// Save writes the document under a fresh unique name. The original file
// name is kept as a suffix so staff can recognise uploads on disk.
func (s *localStore) Save(_ context.Context, name string, data []byte) (string, error) {
	ref := uuid.New().String()
	if base := sanitise(name); base != "" {
		ref = ref + "-" + base
	}

	path := filepath.Join(s.root, ref)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write document")
		return "", fmt.Errorf("failed to store document %s: %w", name, err)
	}

	s.logger.Debug().
		Str("file_ref", ref).
		Int("size", len(data)).
		Msg("document stored")

	return ref, nil
}

// Open reads a previously stored document back.
func (s *localStore) Open(_ context.Context, fileRef string) ([]byte, error) {
	// Refs are generated by Save; reject anything trying to escape root.
	if fileRef != filepath.Base(fileRef) {
		return nil, fmt.Errorf("invalid file ref %q", fileRef)
	}

	data, err := os.ReadFile(filepath.Join(s.root, fileRef))
	if err != nil {
		s.logger.Error().Err(err).Str("file_ref", fileRef).Msg("failed to read document")
		return nil, fmt.Errorf("failed to open document %s: %w", fileRef, err)
	}
	return data, nil
}

// sanitise reduces an uploaded file name to a safe path component.
func sanitise(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
