package service

import (
	"context"
	"fmt"

	"copyshop/internal/pages"
	"copyshop/internal/storage"

	"github.com/rs/zerolog"
)

// printService implements PrintService.
type printService struct {
	store  storage.FileStore
	logger zerolog.Logger
}

// NewPrintService creates a new print upload service.
func NewPrintService(store storage.FileStore, logger zerolog.Logger) PrintService {
	return &printService{
		store:  store,
		logger: logger.With().Str("service", "print").Logger(),
	}
}

// Upload stores the document and estimates its billable page count. The
// estimate only needs the bytes at upload time; the stored copy is kept
// for the print queue.
func (s *printService) Upload(ctx context.Context, name, mediaType string, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document %q", name)
	}

	fileRef, err := s.store.Save(ctx, name, data)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to store document")
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	pageCount := pages.Estimate(data, mediaType)

	s.logger.Info().
		Str("file_ref", fileRef).
		Str("media_type", mediaType).
		Int("page_count", pageCount).
		Int("size", len(data)).
		Msg("document uploaded")

	return &UploadResult{
		FileRef:   fileRef,
		FileName:  name,
		PageCount: pageCount,
	}, nil
}
