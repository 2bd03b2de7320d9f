package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

type PostgresSubscriptionRepository struct {
	db *sql.DB
}

func NewPostgresSubscriptionRepository(db *sql.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

func (r *PostgresSubscriptionRepository) Subscribe(artikul string) (bool, error) {
	query := `INSERT INTO subscriptions (artikul) VALUES ($1)`
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, artikul)
	if err != nil {
		// Two callers racing on the same artikul both succeed logically;
		// the loser sees the duplicate outcome, not a failure.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return false, nil
		}
		return false, fmt.Errorf("failed to subscribe %s: %w", artikul, err)
	}
	return true, nil
}

func (r *PostgresSubscriptionRepository) GetAll() ([]string, error) {
	query := `SELECT artikul FROM subscriptions ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var artikuls []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		artikuls = append(artikuls, a)
	}
	return artikuls, rows.Err()
}
