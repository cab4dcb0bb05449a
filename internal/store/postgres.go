package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"webstore-scraper/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
	external_id   TEXT PRIMARY KEY,
	title         TEXT NOT NULL DEFAULT '',
	downloads     BIGINT NOT NULL DEFAULT 0,
	description   TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT '',
	category_name TEXT NOT NULL DEFAULT '',
	rating        DOUBLE PRECISION,
	user_ratings  BIGINT NOT NULL DEFAULT 0,
	pricing       TEXT NOT NULL DEFAULT ''
)`

const itemColumns = `external_id, title, downloads, description, category, category_name, rating, user_ratings, pricing`

// Postgres is the durable Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// Open connects, verifies the connection and creates the items table if
// it does not exist yet.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("dsn parse: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create items table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

func (p *Postgres) FindByExternalID(ctx context.Context, id string) (*model.Item, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE external_id = $1`, id)
	var it model.Item
	err := row.Scan(&it.ExternalID, &it.Title, &it.Downloads, &it.Description,
		&it.Category, &it.CategoryName, &it.Rating, &it.UserRatings, &it.Pricing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (p *Postgres) Upsert(ctx context.Context, item model.Item) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO items (`+itemColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (external_id) DO UPDATE SET
			title         = EXCLUDED.title,
			downloads     = EXCLUDED.downloads,
			description   = EXCLUDED.description,
			category      = EXCLUDED.category,
			category_name = EXCLUDED.category_name,
			rating        = EXCLUDED.rating,
			user_ratings  = EXCLUDED.user_ratings,
			pricing       = EXCLUDED.pricing`,
		item.ExternalID, item.Title, item.Downloads, item.Description,
		item.Category, item.CategoryName, item.Rating, item.UserRatings, item.Pricing)
	return err
}

func (p *Postgres) All(ctx context.Context) ([]model.Item, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY external_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ExternalID, &it.Title, &it.Downloads, &it.Description,
			&it.Category, &it.CategoryName, &it.Rating, &it.UserRatings, &it.Pricing); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (p *Postgres) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&n)
	return n, err
}
