package repositories

import (
	"github.com/baguettecroissant/beautybeaute.fr/internal/domain/entities"
)

// ListingRepository is the persisted listings collection. The content
// engine only reads it; the ingestion pipeline replaces it wholesale
// after a successful in-memory transform (never a partial update).
type ListingRepository interface {
	// All returns every persisted listing
	All() []entities.Listing
	// Replace persists the full collection, overwriting the previous one
	Replace(listings []entities.Listing) error
}
