package importer

import (
	"context"
	"errors"

	"thali/internal/assets"
	"thali/internal/items"
	"thali/internal/staging"
)

var ErrNothingStaged = errors.New("no import batch is staged")

type Service struct {
	staging *staging.Store
	repo    items.Repository
	linker  *assets.Linker
}

func NewService(store *staging.Store, repo items.Repository, linker *assets.Linker) *Service {
	return &Service{
		staging: store,
		repo:    repo,
		linker:  linker,
	}
}

// --------------------------------------------------
// Parse + stage
// --------------------------------------------------
func (s *Service) Import(payload []byte) (*Result, error) {
	result, err := Parse(payload)
	if err != nil {
		return nil, err
	}

	// Replaces any previously staged batch.
	s.staging.Put(result.Items)

	return result, nil
}

// --------------------------------------------------
// Placeholder archive for the staged batch
// --------------------------------------------------
func (s *Service) PlaceholderArchive() ([]byte, error) {
	batch := s.staging.Get()
	if len(batch) == 0 {
		return nil, ErrNothingStaged
	}
	return assets.BuildPlaceholderArchive(batch)
}

// --------------------------------------------------
// Attach uploaded images to the staged batch
// --------------------------------------------------
func (s *Service) AttachImages(ctx context.Context, archive []byte) (int, error) {
	batch := s.staging.Get()
	if len(batch) == 0 {
		return 0, ErrNothingStaged
	}
	return s.linker.LinkArchive(ctx, batch, archive)
}

// --------------------------------------------------
// Commit the staged batch
// --------------------------------------------------
func (s *Service) Commit(ctx context.Context) (int, error) {
	batch := s.staging.Get()
	if len(batch) == 0 {
		return 0, ErrNothingStaged
	}

	if err := s.repo.Save(ctx, batch); err != nil {
		// The staged batch stays put so the client can retry.
		return 0, err
	}

	s.staging.Clear()
	return len(batch), nil
}
