package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/listing-tracker/internal/models"
)

const storageTimeout = 3 * time.Second

type PostgresRecordRepository struct {
	db *sql.DB
}

func NewPostgresRecordRepository(db *sql.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db}
}

// Upsert inserts or fully overwrites the row for p.Artikul in a single
// statement, so a failed write leaves the previous row intact.
func (r *PostgresRecordRepository) Upsert(artikul string, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (artikul, title, price, rating, total_quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artikul) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			rating = EXCLUDED.rating,
			total_quantity = EXCLUDED.total_quantity
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	p.Artikul = artikul
	err := r.db.QueryRowContext(ctx, query, artikul, p.Title, p.Price, p.Rating, p.TotalQuantity).Scan(&p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to upsert product %s: %w", artikul, err)
	}
	return p, nil
}

func (r *PostgresRecordRepository) GetByArtikul(artikul string) (models.Product, error) {
	query := `SELECT id, artikul, title, price, rating, total_quantity FROM products WHERE artikul = $1`
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, artikul).
		Scan(&p.ID, &p.Artikul, &p.Title, &p.Price, &p.Rating, &p.TotalQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrRecordNotFound
	}
	return p, err
}
