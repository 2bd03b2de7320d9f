package repo

import (
	"errors"

	"github.com/rogerio-castellano/listing-tracker/internal/models"
)

// RecordRepository owns the product snapshot table. Upsert fully replaces
// the stored record for an artikul; there is never more than one row per
// artikul.
type RecordRepository interface {
	Upsert(artikul string, p models.Product) (models.Product, error)
	GetByArtikul(artikul string) (models.Product, error)
}

// ErrRecordNotFound is returned when no snapshot exists for an artikul.
var ErrRecordNotFound = errors.New("product record not found")
