package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/repository"
)

type priceRepository struct {
	db *pgxpool.Pool
}

// NewPriceRepository creates a new PostgreSQL mandi price repository
func NewPriceRepository(db *pgxpool.Pool) repository.Price {
	return &priceRepository{db: db}
}

// SavePoints upserts raw price rows for a commodity
func (r *priceRepository) SavePoints(ctx context.Context, commodity string, points []domain.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	query := `
		INSERT INTO mandi_prices (commodity, price_date, mandi_name, modal_price, min_price, max_price, arrival_quintals)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (commodity, price_date, mandi_name) DO UPDATE
		SET modal_price = EXCLUDED.modal_price,
		    min_price = EXCLUDED.min_price,
		    max_price = EXCLUDED.max_price,
		    arrival_quintals = EXCLUDED.arrival_quintals,
		    fetched_at = NOW()
	`

	key := normalizeCommodity(commodity)
	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(query, key, p.Date, p.MandiName, p.ModalPrice, p.MinPrice, p.MaxPrice, p.ArrivalQuintals)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range points {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to store price points: %w", err)
		}
	}
	return nil
}

// HistoricalPoints returns raw price rows newer than since
func (r *priceRepository) HistoricalPoints(ctx context.Context, commodity string, since time.Time) ([]domain.PricePoint, error) {
	query := `
		SELECT price_date, mandi_name, modal_price, min_price, max_price, arrival_quintals
		FROM mandi_prices
		WHERE commodity = $1 AND price_date > $2
	`

	rows, err := r.db.Query(ctx, query, normalizeCommodity(commodity), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}
	defer rows.Close()

	return scanPricePoints(rows)
}

// LatestPoints returns the rows of the most recent date known for the commodity
func (r *priceRepository) LatestPoints(ctx context.Context, commodity string) ([]domain.PricePoint, error) {
	query := `
		SELECT price_date, mandi_name, modal_price, min_price, max_price, arrival_quintals
		FROM mandi_prices
		WHERE commodity = $1
		  AND price_date = (SELECT MAX(price_date) FROM mandi_prices WHERE commodity = $1)
	`

	rows, err := r.db.Query(ctx, query, normalizeCommodity(commodity))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest prices: %w", err)
	}
	defer rows.Close()

	return scanPricePoints(rows)
}

func scanPricePoints(rows pgx.Rows) ([]domain.PricePoint, error) {
	var points []domain.PricePoint
	for rows.Next() {
		var p domain.PricePoint
		if err := rows.Scan(&p.Date, &p.MandiName, &p.ModalPrice, &p.MinPrice, &p.MaxPrice, &p.ArrivalQuintals); err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func normalizeCommodity(commodity string) string {
	return strings.ToUpper(strings.TrimSpace(commodity))
}
