// Package storage persists the listings collection as a flat JSON file.
package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/repositories"
	apperrors "github.com/baguettecroissant/beautybeaute.fr/pkg/errors"
)

// ListingStore reads and writes the listings-db JSON array. Reads happen
// once up front; writes replace the whole file after a successful
// in-memory transform, so a crash mid-run leaves the previous file intact.
// Concurrent writers are not coordinated; the ingestion CLIs assume
// exclusive access.
type ListingStore struct {
	path     string
	listings []entities.Listing
}

var _ repositories.ListingRepository = (*ListingStore)(nil)

// NewListingStore creates a store backed by the JSON file at path
func NewListingStore(path string) *ListingStore {
	return &ListingStore{path: path}
}

// Load reads the backing file into memory. A missing file is an empty
// collection, not an error.
func (s *ListingStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.listings = nil
			return nil
		}
		return apperrors.NewInternalError("reading listings file", err)
	}

	var listings []entities.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return apperrors.NewValidationError("parsing listings file", err)
	}
	s.listings = listings
	return nil
}

// All returns every loaded listing
func (s *ListingStore) All() []entities.Listing {
	return s.listings
}

// Replace persists the full collection, overwriting the previous file
func (s *ListingStore) Replace(listings []entities.Listing) error {
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("encoding listings", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperrors.NewInternalError("writing listings file", err)
	}
	s.listings = listings
	return nil
}

// Path returns the location of the backing file
func (s *ListingStore) Path() string {
	return s.path
}
